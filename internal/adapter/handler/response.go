package handler

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Abhivandan7/DashCash/internal/core/domain"
)

// errorResponse maps a domain error to an HTTP status plus a stable machine
// code and human-readable reason. Unknown errors become a bare 500.
func errorResponse(c *fiber.Ctx, err error) error {
	var domErr *domain.Error
	if !errors.As(err, &domErr) {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	status := http.StatusInternalServerError
	switch domErr.Kind {
	case domain.KindValidation:
		status = http.StatusBadRequest
		if domErr.Code == domain.ErrDuplicateIdentity.Code {
			status = http.StatusConflict
		}
	case domain.KindBiometric:
		status = http.StatusUnprocessableEntity
		if domErr.Code == domain.ErrProbeExtraction.Code {
			status = http.StatusBadGateway
		}
	case domain.KindAuthentication:
		status = http.StatusUnauthorized
	case domain.KindLedger:
		status = http.StatusConflict
		if domErr.Code == domain.ErrUnknownAccount.Code {
			status = http.StatusNotFound
		}
	case domain.KindStorage:
		status = http.StatusInternalServerError
	}

	return c.Status(status).JSON(fiber.Map{
		"error": domErr.Message,
		"code":  domErr.Code,
	})
}

// decodeImage accepts either a plain base64 string or a data URI
// ("data:image/jpeg;base64,...") and returns the raw bytes.
func decodeImage(encoded string) ([]byte, error) {
	if strings.HasPrefix(encoded, "data:") {
		parts := strings.SplitN(encoded, ",", 2)
		if len(parts) != 2 {
			return nil, errors.New("invalid data URI")
		}
		encoded = parts[1]
	}
	return base64.StdEncoding.DecodeString(encoded)
}
