// internal/transport/http/auth.go
package http

import (
	"log"

	"inventory-service/internal/middleware"
	"inventory-service/pkg/models"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return badRequest(c, "username and password are required")
	}

	token, user, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		log.Printf("❌ [Login] %s: %v", req.Username, err)
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

func (h *Handler) Me(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDContextKey).(uint)
	user, err := h.auth.GetUser(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, user)
}
