// internal/transport/http/assistant.go
package http

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AssistantChat answers a natural-language question about the inventory data.
// Failures inside the pipeline come back as a 200 with success=false; the
// endpoint itself only rejects malformed requests.
func (h *Handler) AssistantChat(c *fiber.Ctx) error {
	var req struct {
		Question string `json:"question"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		return badRequest(c, "question is required")
	}

	resp := h.assistant.Chat(c.Context(), req.Question)
	if !resp.Success {
		log.Printf("🤖 [ASSISTANT] Question failed: %q → %s", req.Question, resp.Error)
	}
	return c.JSON(resp)
}

func (h *Handler) AssistantInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.assistant.Info(),
	})
}
