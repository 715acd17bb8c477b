package handlers

import (
	"errors"
	"log/slog"

	"github.com/biostackhq/biostack/internal/apperr"
	"github.com/biostackhq/biostack/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// respondError maps the service error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a server fault and is reported generically.
func respondError(c *fiber.Ctx, err error) error {
	if verr, ok := apperr.AsValidation(err); ok {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Error: true, Message: "Validation failed", Fields: verr.Fields,
		})
	}

	status := fiber.StatusInternalServerError
	message := "Something went wrong"
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		status, message = fiber.StatusNotFound, "Not found"
	case errors.Is(err, apperr.ErrForbidden):
		status, message = fiber.StatusForbidden, err.Error()
	case errors.Is(err, apperr.ErrQuotaExceeded):
		status, message = fiber.StatusForbidden, err.Error()
	case errors.Is(err, apperr.ErrConflict):
		status, message = fiber.StatusConflict, err.Error()
	default:
		slog.Error("unhandled service error", "method", c.Method(), "path", c.Path(), "error", err.Error())
	}

	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}
