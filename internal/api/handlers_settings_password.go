package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthdash/internal/services"
	"go.uber.org/zap"
)

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := changePasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.authService.ChangePassword(*user, input.CurrentPassword, input.NewPassword, input.ConfirmPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrPasswordChangeInvalidInput):
			return apiError(c, fiber.StatusBadRequest, "invalid input")
		case errors.Is(err, services.ErrAuthPasswordMismatch):
			return apiError(c, fiber.StatusBadRequest, "password mismatch")
		case errors.Is(err, services.ErrInvalidCurrentPassword):
			return apiError(c, fiber.StatusUnauthorized, "invalid current password")
		case errors.Is(err, services.ErrNewPasswordMustDiffer):
			return apiError(c, fiber.StatusBadRequest, "new password must differ")
		case errors.Is(err, services.ErrWeakPassword):
			return apiError(c, fiber.StatusBadRequest, "weak password")
		default:
			handler.logger.Error("change password", zap.Uint("user_id", user.ID), zap.Error(err))
			return apiError(c, fiber.StatusInternalServerError, "failed to update password")
		}
	}

	user.MustChangePassword = false
	if err := handler.setAuthCookie(c, user, true); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(fiber.Map{"ok": true})
}
