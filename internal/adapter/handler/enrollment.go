package handler

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Abhivandan7/DashCash/internal/core/service"
)

type EnrollmentHandler struct {
	Service *service.EnrollmentService
}

// EnrollRequest defines what the caller sends us. InitialDeposit is in
// minor units; Image is base64 (plain or data URI).
type EnrollRequest struct {
	AccountNo      string `json:"account_no"`
	HolderName     string `json:"holder_name"`
	InitialDeposit int64  `json:"initial_deposit"`
	Image          string `json:"image"`
}

func (h *EnrollmentHandler) Enroll(c *fiber.Ctx) error {
	var req EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Warn("Invalid enrollment body", "error", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Image == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Enrollment image is required"})
	}

	image, err := decodeImage(req.Image)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Image must be base64 encoded"})
	}

	account, err := h.Service.Enroll(c.Context(), req.AccountNo, req.HolderName, req.InitialDeposit, image)
	if err != nil {
		slog.Warn("Enrollment failed", "error", err, "account_no", req.AccountNo)
		return errorResponse(c, err)
	}

	return c.Status(http.StatusCreated).JSON(account)
}
