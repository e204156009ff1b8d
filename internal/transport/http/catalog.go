// internal/transport/http/catalog.go
package http

import (
	"inventory-service/internal/middleware"
	"inventory-service/pkg/models"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ListCategories(c *fiber.Ctx) error {
	limit := getQueryInt(c, "limit", 50, 1, 200)
	offset := getQueryInt(c, "offset", 0, 0, 100000)
	categories, total, err := h.catalog.ListCategories(c.Context(), limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return listResponse(c, categories, total, limit, offset)
}

func (h *Handler) GetCategory(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	category, err := h.catalog.GetCategory(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, category)
}

func (h *Handler) CreateCategory(c *fiber.Ctx) error {
	var req models.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	category, err := h.catalog.CreateCategory(c.Context(), &req, middleware.OperatorFromContext(c))
	if err != nil {
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusCreated, category)
}

func (h *Handler) UpdateCategory(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req models.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	category, err := h.catalog.UpdateCategory(c.Context(), id, &req, middleware.OperatorFromContext(c))
	if err != nil {
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, category)
}

func (h *Handler) DeleteCategory(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.catalog.DeleteCategory(c.Context(), id, middleware.OperatorFromContext(c)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "category deleted"})
}

func (h *Handler) ListProductModels(c *fiber.Ctx) error {
	categoryID, err := getQueryUint(c, "categoryId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	limit := getQueryInt(c, "limit", 50, 1, 200)
	offset := getQueryInt(c, "offset", 0, 0, 100000)
	productModels, total, err := h.catalog.ListModels(c.Context(), categoryID, limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return listResponse(c, productModels, total, limit, offset)
}

func (h *Handler) GetProductModel(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	m, err := h.catalog.GetModel(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, m)
}

func (h *Handler) CreateProductModel(c *fiber.Ctx) error {
	var req models.ProductModelRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	m, err := h.catalog.CreateModel(c.Context(), &req, middleware.OperatorFromContext(c))
	if err != nil {
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusCreated, m)
}

func (h *Handler) UpdateProductModel(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req models.ProductModelRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	m, err := h.catalog.UpdateModel(c.Context(), id, &req, middleware.OperatorFromContext(c))
	if err != nil {
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, m)
}

func (h *Handler) DeleteProductModel(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.catalog.DeleteModel(c.Context(), id, middleware.OperatorFromContext(c)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "product model deleted"})
}
