// internal/transport/http/products.go
package http

import (
	"log"

	"inventory-service/internal/middleware"
	"inventory-service/internal/service"
	"inventory-service/pkg/models"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ListProducts(c *fiber.Ctx) error {
	categoryID, err := getQueryUint(c, "categoryId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	supplierID, err := getQueryUint(c, "supplierId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	params := service.ProductListParams{
		Keyword:    c.Query("keyword"),
		CategoryID: categoryID,
		SupplierID: supplierID,
		Limit:      getQueryInt(c, "limit", 20, 1, 100),
		Offset:     getQueryInt(c, "offset", 0, 0, 100000),
	}

	products, total, err := h.products.List(c.Context(), params)
	if err != nil {
		log.Printf("❌ [ListProducts] %v", err)
		return serviceError(c, err)
	}
	return listResponse(c, products, total, params.Limit, params.Offset)
}

func (h *Handler) LowStockProducts(c *fiber.Ctx) error {
	products, err := h.products.LowStock(c.Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
		"total":   len(products),
	})
}

func (h *Handler) GetProduct(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	product, err := h.products.Get(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, product)
}

func (h *Handler) CreateProduct(c *fiber.Ctx) error {
	var req models.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	product, err := h.products.Create(c.Context(), &req, middleware.OperatorFromContext(c))
	if err != nil {
		log.Printf("❌ [CreateProduct] %v", err)
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusCreated, product)
}

func (h *Handler) UpdateProduct(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req models.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	product, err := h.products.Update(c.Context(), id, &req, middleware.OperatorFromContext(c))
	if err != nil {
		log.Printf("❌ [UpdateProduct] %v", err)
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, product)
}

func (h *Handler) DeleteProduct(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.products.Delete(c.Context(), id, middleware.OperatorFromContext(c)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "product deleted",
	})
}

// UploadProductImage stores a multipart image on R2 and returns its public URL.
func (h *Handler) UploadProductImage(c *fiber.Ctx) error {
	if h.uploader == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"message": "image storage is not configured",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "cannot read uploaded file")
	}
	defer file.Close()

	url, err := h.uploader.UploadProductImage(c.Context(), file, fileHeader.Filename)
	if err != nil {
		log.Printf("❌ [UploadProductImage] %s: %v", fileHeader.Filename, err)
		return badRequest(c, err.Error())
	}

	log.Printf("🖼️ [UPLOAD] %s → %s", fileHeader.Filename, url)
	return dataResponse(c, fiber.StatusCreated, fiber.Map{"url": url})
}
