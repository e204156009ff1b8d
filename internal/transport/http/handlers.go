// internal/transport/http/handlers.go
package http

import (
	"errors"
	"log"
	"strconv"

	"inventory-service/internal/assistant"
	"inventory-service/internal/cozesync"
	"inventory-service/internal/email"
	"inventory-service/internal/service"
	"inventory-service/utils"

	"github.com/gofiber/fiber/v2"
)

// Handler bundles every service behind the REST API. Uploader and mailer are
// optional: nil when R2 / SMTP are not configured, and their endpoints answer
// 503 in that case.
type Handler struct {
	auth      *service.AuthService
	products  *service.ProductService
	catalog   *service.CatalogService
	suppliers *service.SupplierService
	customers *service.CustomerService
	purchases *service.PurchaseOrderService
	sales     *service.SalesOrderService
	inventory *service.InventoryService
	users     *service.UserService
	oplogs    *service.OperationLogService
	cozeSync  *service.CozeSyncService
	assistant *assistant.Service

	uploader *utils.ProductImageClient
	mailer   *email.Sender
	alertTo  string
}

type HandlerDeps struct {
	Auth      *service.AuthService
	Products  *service.ProductService
	Catalog   *service.CatalogService
	Suppliers *service.SupplierService
	Customers *service.CustomerService
	Purchases *service.PurchaseOrderService
	Sales     *service.SalesOrderService
	Inventory *service.InventoryService
	Users     *service.UserService
	OpLogs    *service.OperationLogService
	CozeSync  *service.CozeSyncService
	Assistant *assistant.Service

	Uploader       *utils.ProductImageClient
	Mailer         *email.Sender
	AlertRecipient string
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		auth:      deps.Auth,
		products:  deps.Products,
		catalog:   deps.Catalog,
		suppliers: deps.Suppliers,
		customers: deps.Customers,
		purchases: deps.Purchases,
		sales:     deps.Sales,
		inventory: deps.Inventory,
		users:     deps.Users,
		oplogs:    deps.OpLogs,
		cozeSync:  deps.CozeSync,
		assistant: deps.Assistant,
		uploader:  deps.Uploader,
		mailer:    deps.Mailer,
		alertTo:   deps.AlertRecipient,
	}
}

func getQueryInt(c *fiber.Ctx, key string, def, min, max int) int {
	s := c.Query(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func getParamID(c *fiber.Ctx) (uint, error) {
	v, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || v == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(v), nil
}

func getQueryUint(c *fiber.Ctx, key string) (*uint, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil, errors.New("invalid " + key)
	}
	u := uint(v)
	return &u, nil
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": msg,
	})
}

// serviceError translates service failures into the API error shape.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, cozesync.ErrConfigNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": err.Error()})
	case errors.Is(err, service.ErrValidation):
		return badRequest(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": err.Error()})
	case errors.Is(err, service.ErrOrderNotPending), errors.Is(err, service.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": err.Error()})
	default:
		// Internal detail stays in the log; clients get a generic message.
		log.Printf("❌ [HTTP] %s %s failed: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}
}

func listResponse(c *fiber.Ctx, items interface{}, total int64, limit, offset int) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    items,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

func dataResponse(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}
