package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Abhivandan7/DashCash/internal/core/ports"
	"github.com/Abhivandan7/DashCash/internal/core/security"
)

// Protected resolves the bearer session token issued at login and stores
// the owning account number in the request context. Tokens are compared by
// hash only.
func Protected(sessions ports.SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Missing session token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid Header Format"})
		}

		accountNo, err := sessions.LookupSession(c.Context(), security.HashToken(parts[1]))
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session token"})
		}

		c.Locals("account_no", accountNo)
		return c.Next()
	}
}
