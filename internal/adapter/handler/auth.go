package handler

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Abhivandan7/DashCash/internal/core/service"
)

type AuthHandler struct {
	Service *service.AuthService
}

type LoginRequest struct {
	Image string `json:"image"`
}

// Login authenticates a probe image and issues a session token. The token
// is returned exactly once.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Image == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Probe image is required"})
	}

	image, err := decodeImage(req.Image)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Image must be base64 encoded"})
	}

	result, err := h.Service.Authenticate(c.Context(), image)
	if err != nil {
		slog.Warn("Login rejected", "error", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"account_no":    result.Account.AccountNo,
		"holder_name":   result.Account.HolderName,
		"balance":       result.Account.Balance,
		"score":         result.Score,
		"session_token": result.Token,
	})
}
