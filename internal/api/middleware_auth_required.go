package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired loads the session user. Users holding a temporary password
// may only reach the endpoints needed to replace it.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserKey, user)
	if user.MustChangePassword && !allowedWithTemporaryPassword(c.Path()) {
		return apiError(c, fiber.StatusForbidden, "password change required")
	}
	return c.Next()
}

// allowedWithTemporaryPassword matches the way non-strict routing does, so a
// trailing slash reaches the same endpoint.
func allowedWithTemporaryPassword(path string) bool {
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	switch path {
	case "/api/auth/change-password", "/api/auth/logout", "/api/auth/me":
		return true
	default:
		return false
	}
}
