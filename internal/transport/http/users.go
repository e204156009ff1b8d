// internal/transport/http/users.go
package http

import (
	"log"

	"inventory-service/internal/middleware"
	"inventory-service/pkg/models"

	"github.com/gofiber/fiber/v2"
)

// User management is admin-only, enforced at the route group.

func (h *Handler) ListUsers(c *fiber.Ctx) error {
	limit := getQueryInt(c, "limit", 20, 1, 100)
	offset := getQueryInt(c, "offset", 0, 0, 100000)
	users, total, err := h.users.List(c.Context(), limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return listResponse(c, users, total, limit, offset)
}

func (h *Handler) GetUser(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	user, err := h.users.Get(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, user)
}

func (h *Handler) CreateUser(c *fiber.Ctx) error {
	var req models.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	user, err := h.users.Create(c.Context(), &req, middleware.OperatorFromContext(c))
	if err != nil {
		log.Printf("❌ [CreateUser] %s: %v", req.Username, err)
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusCreated, user)
}

func (h *Handler) UpdateUser(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req models.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	user, err := h.users.Update(c.Context(), id, &req, middleware.OperatorFromContext(c))
	if err != nil {
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, user)
}

func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.users.Delete(c.Context(), id, middleware.OperatorFromContext(c)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "user deleted"})
}

func (h *Handler) ListOperationLogs(c *fiber.Ctx) error {
	limit := getQueryInt(c, "limit", 50, 1, 200)
	offset := getQueryInt(c, "offset", 0, 0, 100000)
	logs, total, err := h.oplogs.List(c.Context(), c.Query("module"), c.Query("operationType"), limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return listResponse(c, logs, total, limit, offset)
}
