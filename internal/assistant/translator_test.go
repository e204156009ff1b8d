package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"inventory-service/internal/llm"
	"inventory-service/internal/schema"
)

func TestExtractSQL(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSQL  string
		wantErr  bool
		wantExpl string
	}{
		{
			name:     "fenced sql block",
			content:  "```sql\nSELECT * FROM products;\n```\nAll products.",
			wantSQL:  "SELECT * FROM products;",
			wantExpl: "All products.",
		},
		{
			name:    "fenced block without language tag",
			content: "```\nSELECT id FROM suppliers\n```",
			wantSQL: "SELECT id FROM suppliers",
		},
		{
			name:     "bare select with prose around it",
			content:  "Here you go: SELECT name FROM customers; hope that helps",
			wantSQL:  "SELECT name FROM customers;",
			wantExpl: "Here you go:",
		},
		{
			name:    "lowercase bare select",
			content: "select sku from products",
			wantSQL: "select sku from products",
		},
		{
			name:    "no sql at all",
			content: "I cannot answer that question.",
			wantErr: true,
		},
		{
			name:    "empty reply",
			content: "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, expl, err := extractSQL(tt.content)
			if (err != nil) != tt.wantErr {
				t.Fatalf("extractSQL error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if sql != tt.wantSQL {
				t.Errorf("sql = %q, want %q", sql, tt.wantSQL)
			}
			if tt.wantExpl != "" && expl != tt.wantExpl {
				t.Errorf("explanation = %q, want %q", expl, tt.wantExpl)
			}
		})
	}
}

func fakeLLM(t *testing.T, content string) *llm.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) == 0 {
			t.Errorf("malformed completion request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return llm.NewClient(srv.URL, "test-key", "test-model", 5*time.Second, 512)
}

func TestTranslate(t *testing.T) {
	reply := "```sql\nSELECT sku FROM products WHERE deleted_at IS NULL LIMIT 100;\n```\nLive product SKUs."
	tr := NewTranslator(fakeLLM(t, reply), schema.NewRegistry())

	got, err := tr.Translate(context.Background(), "what products exist?")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if !strings.HasPrefix(got.SQL, "SELECT sku FROM products") {
		t.Errorf("sql = %q", got.SQL)
	}
	if got.Explanation != "Live product SKUs." {
		t.Errorf("explanation = %q", got.Explanation)
	}
}

func TestTranslateNoSQLIsHardFailure(t *testing.T) {
	tr := NewTranslator(fakeLLM(t, "Sorry, I do not know."), schema.NewRegistry())
	if _, err := tr.Translate(context.Background(), "???"); err == nil {
		t.Fatal("expected error when the model returns no SQL")
	}
}

func TestTranslateSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	client := llm.NewClient(srv.URL, "test-key", "test-model", 5*time.Second, 512)
	tr := NewTranslator(client, schema.NewRegistry())
	if _, err := tr.Translate(context.Background(), "anything"); err == nil {
		t.Fatal("expected error from failing API")
	}
}

func TestPromptCarriesSchemaAndQuestion(t *testing.T) {
	tr := NewTranslator(nil, schema.NewRegistry())
	prompt := tr.buildPrompt("how many suppliers are there?")

	for _, want := range []string{"products", "suppliers", "deleted_at IS NULL", "how many suppliers are there?"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
