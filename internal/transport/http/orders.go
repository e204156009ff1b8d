// internal/transport/http/orders.go
package http

import (
	"log"

	"inventory-service/internal/middleware"
	"inventory-service/pkg/models"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ListPurchaseOrders(c *fiber.Ctx) error {
	limit := getQueryInt(c, "limit", 20, 1, 100)
	offset := getQueryInt(c, "offset", 0, 0, 100000)
	orders, total, err := h.purchases.List(c.Context(), c.Query("status"), limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return listResponse(c, orders, total, limit, offset)
}

func (h *Handler) GetPurchaseOrder(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	order, err := h.purchases.Get(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, order)
}

func (h *Handler) CreatePurchaseOrder(c *fiber.Ctx) error {
	var req models.OrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	order, err := h.purchases.Create(c.Context(), &req, middleware.OperatorFromContext(c))
	if err != nil {
		log.Printf("❌ [CreatePurchaseOrder] %v", err)
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusCreated, order)
}

// CompletePurchaseOrder books every item into stock and closes the order.
func (h *Handler) CompletePurchaseOrder(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	order, err := h.purchases.Complete(c.Context(), id, middleware.OperatorFromContext(c))
	if err != nil {
		log.Printf("❌ [CompletePurchaseOrder] %d: %v", id, err)
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, order)
}

func (h *Handler) CancelPurchaseOrder(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	order, err := h.purchases.Cancel(c.Context(), id, middleware.OperatorFromContext(c))
	if err != nil {
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, order)
}

func (h *Handler) ListSalesOrders(c *fiber.Ctx) error {
	limit := getQueryInt(c, "limit", 20, 1, 100)
	offset := getQueryInt(c, "offset", 0, 0, 100000)
	orders, total, err := h.sales.List(c.Context(), c.Query("status"), limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return listResponse(c, orders, total, limit, offset)
}

func (h *Handler) GetSalesOrder(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	order, err := h.sales.Get(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, order)
}

func (h *Handler) CreateSalesOrder(c *fiber.Ctx) error {
	var req models.OrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	order, err := h.sales.Create(c.Context(), &req, middleware.OperatorFromContext(c))
	if err != nil {
		log.Printf("❌ [CreateSalesOrder] %v", err)
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusCreated, order)
}

// CompleteSalesOrder ships every item out of stock; it fails whole if any
// product does not have enough on hand.
func (h *Handler) CompleteSalesOrder(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	order, err := h.sales.Complete(c.Context(), id, middleware.OperatorFromContext(c))
	if err != nil {
		log.Printf("❌ [CompleteSalesOrder] %d: %v", id, err)
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, order)
}

func (h *Handler) CancelSalesOrder(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	order, err := h.sales.Cancel(c.Context(), id, middleware.OperatorFromContext(c))
	if err != nil {
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, order)
}
