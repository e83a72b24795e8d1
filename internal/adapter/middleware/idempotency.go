package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/Abhivandan7/DashCash/internal/core/ports"
)

// Idempotency replays the cached response for a repeated Idempotency-Key so
// a retried transaction is applied at most once.
func Idempotency(store ports.IdempotencyStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get("Idempotency-Key")
		if key == "" {
			return c.Next()
		}

		status, body, ok, err := store.GetCachedResponse(c.Context(), key)
		if err != nil {
			slog.Error("Idempotency lookup failed", "error", err, "key", key)
			return c.Next()
		}
		if ok {
			slog.Info("Idempotency hit, returning cached response", "key", key)
			c.Set("X-Idempotency-Hit", "true")
			c.Set("Content-Type", "application/json")
			return c.Status(status).Send(body)
		}

		if err := c.Next(); err != nil {
			return err
		}

		resStatus := c.Response().StatusCode()
		resBody := make([]byte, len(c.Response().Body()))
		copy(resBody, c.Response().Body())

		if err := store.SaveCachedResponse(c.Context(), key, resStatus, resBody); err != nil {
			slog.Error("Failed to save idempotency key", "error", err, "key", key)
		}
		return nil
	}
}
