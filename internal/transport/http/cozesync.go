// internal/transport/http/cozesync.go
package http

import (
	"log"
	"strings"

	"inventory-service/internal/middleware"
	"inventory-service/pkg/models"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ListSyncTemplates(c *fiber.Ctx) error {
	limit := getQueryInt(c, "limit", 20, 1, 100)
	offset := getQueryInt(c, "offset", 0, 0, 100000)
	configs, total, err := h.cozeSync.List(c.Context(), limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return listResponse(c, configs, total, limit, offset)
}

func (h *Handler) GetSyncTemplate(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	cfg, err := h.cozeSync.Get(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, cfg)
}

func (h *Handler) CreateSyncTemplate(c *fiber.Ctx) error {
	var req models.CozeSyncConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	cfg, err := h.cozeSync.Create(c.Context(), &req, middleware.OperatorFromContext(c))
	if err != nil {
		log.Printf("❌ [CreateSyncTemplate] %s: %v", req.Name, err)
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusCreated, cfg)
}

func (h *Handler) UpdateSyncTemplate(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req models.CozeSyncConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	cfg, err := h.cozeSync.Update(c.Context(), id, &req, middleware.OperatorFromContext(c))
	if err != nil {
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, cfg)
}

func (h *Handler) PauseSyncTemplate(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	cfg, err := h.cozeSync.Pause(c.Context(), id, middleware.OperatorFromContext(c))
	if err != nil {
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, cfg)
}

func (h *Handler) ResumeSyncTemplate(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	cfg, err := h.cozeSync.Resume(c.Context(), id, middleware.OperatorFromContext(c))
	if err != nil {
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, cfg)
}

// ManualSyncTemplate pushes existing rows through the template's insert
// workflow. Optional filters narrow the rows; results are reported per row.
func (h *Handler) ManualSyncTemplate(c *fiber.Ctx) error {
	id, err := getParamID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req struct {
		BatchSize int               `json:"batchSize"`
		Filters   map[string]string `json:"filters"`
	}
	// Body is optional.
	_ = c.BodyParser(&req)

	result, err := h.cozeSync.ManualSync(c.Context(), id, req.BatchSize, req.Filters)
	if err != nil {
		log.Printf("❌ [ManualSyncTemplate] config %d: %v", id, err)
		return serviceError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, result)
}

// PreviewSync shows rows exactly as a sync would send them, without calling
// any workflow or touching counters.
func (h *Handler) PreviewSync(c *fiber.Ctx) error {
	table := c.Query("table")
	if table == "" {
		return badRequest(c, "table is required")
	}
	var fields []string
	if raw := c.Query("fields"); raw != "" {
		for _, f := range strings.Split(raw, ",") {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
	}
	limit := getQueryInt(c, "limit", 10, 1, 100)

	rows, err := h.cozeSync.Preview(c.Context(), table, fields, limit)
	if err != nil {
		return badRequest(c, err.Error())
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    rows,
		"total":   len(rows),
	})
}

// ProcessPendingSync replays change-log entries that were never delivered,
// oldest first.
func (h *Handler) ProcessPendingSync(c *fiber.Ctx) error {
	limit := getQueryInt(c, "limit", 100, 1, 1000)
	processed, err := h.cozeSync.ProcessPending(c.Context(), limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"processed": processed,
	})
}
