// internal/transport/http/partners.go
package http

import (
	"inventory-service/internal/middleware"
	"inventory-service/pkg/models"

	"github.com/gofiber/fiber/v2"
)

// Suppliers and customers share the same request shape, so the handlers are
// deliberately parallel.

func (h *Handler) ListSuppliers(c *fiber.Ctx) error {
	limit := getQueryInt(c, "limit", 20, 1, 100)
	offset := getQueryInt(c, "offset", 0, 0, 100000)
	suppliers, total, err := h.suppliers.List(c.Context(), c.Query("keyword"), limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return listResponse(c, suppliers, total, limit, offset)
}

func (h *Handler) GetSupplier(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	supplier, err := h.suppliers.Get(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, supplier)
}

func (h *Handler) CreateSupplier(c *fiber.Ctx) error {
	var req models.PartnerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	supplier, err := h.suppliers.Create(c.Context(), &req, middleware.OperatorFromContext(c))
	if err != nil {
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusCreated, supplier)
}

func (h *Handler) UpdateSupplier(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req models.PartnerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	supplier, err := h.suppliers.Update(c.Context(), id, &req, middleware.OperatorFromContext(c))
	if err != nil {
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, supplier)
}

func (h *Handler) DeleteSupplier(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.suppliers.Delete(c.Context(), id, middleware.OperatorFromContext(c)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "supplier deleted"})
}

func (h *Handler) ListCustomers(c *fiber.Ctx) error {
	limit := getQueryInt(c, "limit", 20, 1, 100)
	offset := getQueryInt(c, "offset", 0, 0, 100000)
	customers, total, err := h.customers.List(c.Context(), c.Query("keyword"), limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return listResponse(c, customers, total, limit, offset)
}

func (h *Handler) GetCustomer(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	customer, err := h.customers.Get(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, customer)
}

func (h *Handler) CreateCustomer(c *fiber.Ctx) error {
	var req models.PartnerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	customer, err := h.customers.Create(c.Context(), &req, middleware.OperatorFromContext(c))
	if err != nil {
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusCreated, customer)
}

func (h *Handler) UpdateCustomer(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req models.PartnerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	customer, err := h.customers.Update(c.Context(), id, &req, middleware.OperatorFromContext(c))
	if err != nil {
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, customer)
}

func (h *Handler) DeleteCustomer(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.customers.Delete(c.Context(), id, middleware.OperatorFromContext(c)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "customer deleted"})
}
