// internal/transport/http/handlers_test.go
package http

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"inventory-service/internal/service"

	"github.com/gofiber/fiber/v2"
)

func TestServiceErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", service.ErrNotFound, fiber.StatusNotFound},
		{"validation", service.ErrValidation, fiber.StatusBadRequest},
		{"credentials", service.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{"order state", service.ErrOrderNotPending, fiber.StatusConflict},
		{"stock", service.ErrInsufficientStock, fiber.StatusConflict},
		{"internal", errors.New("pq: connection refused"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/boom", func(c *fiber.Ctx) error {
				return serviceError(c, tt.err)
			})
			resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestServiceErrorHidesInternalDetail(t *testing.T) {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return serviceError(c, errors.New("pq: password authentication failed for user postgres"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)

	if strings.Contains(string(body), "postgres") {
		t.Errorf("500 body leaks internal detail: %s", body)
	}
	if !strings.Contains(string(body), "internal server error") {
		t.Errorf("500 body missing generic message: %s", body)
	}
}
