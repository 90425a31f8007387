package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthdash/internal/services"
	"go.uber.org/zap"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// respondRecordError maps record store and validation failures to statuses.
// fallback is the message used for unexpected errors.
func (handler *Handler) respondRecordError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrInvalidRecordFields):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnknownRecordKind):
		return apiError(c, fiber.StatusNotFound, "unknown record kind")
	case errors.Is(err, services.ErrRecordNotFound):
		return apiError(c, fiber.StatusNotFound, "record not found")
	case errors.Is(err, services.ErrRecordStoreUnavailable):
		handler.logger.Warn("record store unavailable",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return apiError(c, fiber.StatusBadGateway, "record store unavailable")
	default:
		handler.logger.Error(fallback,
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return apiError(c, fiber.StatusInternalServerError, fallback)
	}
}
