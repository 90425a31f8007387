package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	user, from, to, status, message := handler.exportUserAndRange(c)
	if status != 0 {
		return apiError(c, status, message)
	}

	summary, err := handler.exportService.BuildSummary(c.UserContext(), user.ID, from, to)
	if err != nil {
		return handler.respondRecordError(c, err, "failed to fetch entries")
	}
	return c.JSON(summary)
}
