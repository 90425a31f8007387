package api

import (
	"bytes"
	"encoding/csv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthdash/internal/services"
)

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	user, from, to, status, message := handler.exportUserAndRange(c)
	if status != 0 {
		return apiError(c, status, message)
	}

	rows, err := handler.exportService.BuildCSVRows(c.UserContext(), user.ID, from, to, currentLabels(c))
	if err != nil {
		return handler.respondRecordError(c, err, "failed to fetch entries")
	}

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(services.ExportCSVHeaders); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}
	if err := writer.WriteAll(rows); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	now := handler.now().In(handler.location)
	setExportAttachmentHeaders(c, "text/csv; charset=utf-8", buildExportFilename(now, "csv"))
	return c.Send(output.Bytes())
}
