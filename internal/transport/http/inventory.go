// internal/transport/http/inventory.go
package http

import (
	"log"

	"inventory-service/internal/email/templates"
	"inventory-service/internal/middleware"
	"inventory-service/pkg/models"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ListInventoryRecords(c *fiber.Ctx) error {
	productID, err := getQueryUint(c, "productId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	limit := getQueryInt(c, "limit", 20, 1, 100)
	offset := getQueryInt(c, "offset", 0, 0, 100000)

	records, total, err := h.inventory.Records(c.Context(), productID, c.Query("changeType"), limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return listResponse(c, records, total, limit, offset)
}

func (h *Handler) AdjustInventory(c *fiber.Ctx) error {
	var req models.InventoryAdjustRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	record, err := h.inventory.Adjust(c.Context(), &req, middleware.OperatorFromContext(c))
	if err != nil {
		log.Printf("❌ [AdjustInventory] product %d: %v", req.ProductID, err)
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusCreated, record)
}

// SendLowStockAlert emails the current low-stock report to the configured
// recipient (or an override in the request body).
func (h *Handler) SendLowStockAlert(c *fiber.Ctx) error {
	if h.mailer == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"message": "email delivery is not configured",
		})
	}

	var req struct {
		To string `json:"to"`
	}
	// Body is optional.
	_ = c.BodyParser(&req)
	to := req.To
	if to == "" {
		to = h.alertTo
	}
	if to == "" {
		return badRequest(c, "no recipient configured, pass \"to\" in the body")
	}

	products, err := h.products.LowStock(c.Context())
	if err != nil {
		return serviceError(c, err)
	}
	if len(products) == 0 {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "no products below minimum stock, nothing sent",
			"count":   0,
		})
	}

	body, err := templates.RenderLowStockReport(products)
	if err != nil {
		return serviceError(c, err)
	}
	if err := h.mailer.Send(c.Context(), to, "Low stock report", body); err != nil {
		log.Printf("❌ [SendLowStockAlert] to %s: %v", to, err)
		return serviceError(c, err)
	}

	log.Printf("📧 [ALERT] Low stock report sent to %s (%d products)", to, len(products))
	return c.JSON(fiber.Map{
		"success": true,
		"message": "low stock report sent",
		"count":   len(products),
	})
}
