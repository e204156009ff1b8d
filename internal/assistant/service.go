package assistant

import (
	"context"
	"log"

	"inventory-service/internal/schema"
)

// ChatResponse is the boundary shape for one assistant round-trip. External
// failures land in Error with Success=false; the HTTP layer never sees a Go
// error for those.
type ChatResponse struct {
	Success     bool   `json:"success"`
	SQL         string `json:"sql,omitempty"`
	Explanation string `json:"explanation,omitempty"`
	Answer      string `json:"answer,omitempty"`
	RowCount    int    `json:"rowCount"`
	Error       string `json:"error,omitempty"`
}

// Service wires the translator and executor into the chat operation.
type Service struct {
	translator *Translator
	executor   *Executor
	registry   *schema.Registry
}

func NewService(translator *Translator, executor *Executor, registry *schema.Registry) *Service {
	return &Service{translator: translator, executor: executor, registry: registry}
}

// Chat answers a natural-language question: translate, validate, execute,
// render. Every failure mode produces a structured response, never a panic or
// propagated error.
func (s *Service) Chat(ctx context.Context, question string) *ChatResponse {
	translation, err := s.translator.Translate(ctx, question)
	if err != nil {
		return &ChatResponse{Success: false, Error: err.Error()}
	}

	log.Printf("🤖 [ASSISTANT] Generated SQL: %s", translation.SQL)

	result, err := s.executor.Execute(ctx, translation.SQL)
	if err != nil {
		return &ChatResponse{
			Success:     false,
			SQL:         translation.SQL,
			Explanation: translation.Explanation,
			Error:       err.Error(),
		}
	}

	return &ChatResponse{
		Success:     true,
		SQL:         translation.SQL,
		Explanation: translation.Explanation,
		Answer:      result.FormatText(),
		RowCount:    result.RowCount,
	}
}

// Info describes the queryable schema for the assistant UI.
func (s *Service) Info() map[string]interface{} {
	tables := make([]map[string]interface{}, 0)
	for _, name := range s.registry.TableNames() {
		t, err := s.registry.Table(name)
		if err != nil {
			continue
		}
		tables = append(tables, map[string]interface{}{
			"name":        t.Name,
			"description": t.Description,
			"columns":     t.ColumnNames(),
		})
	}
	return map[string]interface{}{
		"tables": tables,
	}
}
