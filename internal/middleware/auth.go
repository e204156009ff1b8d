// internal/middleware/auth.go
package middleware

import (
	"log"
	"strings"

	"inventory-service/internal/service"
	"inventory-service/pkg/models"

	"github.com/gofiber/fiber/v2"
)

// Context keys for authenticated user information (Fiber Locals).
const (
	UserIDContextKey   = "userID"
	UsernameContextKey = "username"
	RoleContextKey     = "role"
)

// BearerAuth validates the Authorization bearer token and puts the claims in
// the request context. Mutating routes sit behind this.
func BearerAuth(authService *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "missing bearer token",
			})
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := authService.ValidateToken(token)
		if err != nil {
			log.Printf("[AUTH] ❌ REJECTED | IP=%s | Path=%s | %v", c.IP(), c.Path(), err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "invalid or expired token",
			})
		}

		c.Locals(UserIDContextKey, claims.UserID)
		c.Locals(UsernameContextKey, claims.Subject)
		c.Locals(RoleContextKey, claims.Role)
		return c.Next()
	}
}

// AdminOnly requires the admin role. Must run after BearerAuth.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(RoleContextKey).(string)
		if role != models.RoleAdmin {
			log.Printf("[AUTH] ❌ REJECTED (not admin) | User=%v | Path=%s", c.Locals(UsernameContextKey), c.Path())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "admin role required",
			})
		}
		return c.Next()
	}
}

// OperatorFromContext extracts who is acting from validated claims.
func OperatorFromContext(c *fiber.Ctx) service.Operator {
	id, _ := c.Locals(UserIDContextKey).(uint)
	name, _ := c.Locals(UsernameContextKey).(string)
	return service.Operator{ID: id, Name: name}
}
