package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthdash/internal/models"
)

func (handler *Handler) ListRecords(c *fiber.Ctx) error {
	user, kind, status, message := recordUserAndKind(c)
	if status != 0 {
		return apiError(c, status, message)
	}

	records, err := handler.recordService.List(c.UserContext(), user.ID, kind)
	if err != nil {
		return handler.respondRecordError(c, err, "failed to load records")
	}
	if records == nil {
		records = []models.Record{}
	}
	return c.JSON(fiber.Map{
		"kind":    kind,
		"records": records,
	})
}

func (handler *Handler) GetRecord(c *fiber.Ctx) error {
	user, kind, status, message := recordUserAndKind(c)
	if status != 0 {
		return apiError(c, status, message)
	}

	record, err := handler.recordService.Get(c.UserContext(), user.ID, kind, c.Params("id"))
	if err != nil {
		return handler.respondRecordError(c, err, "failed to load record")
	}
	return c.JSON(record)
}

func (handler *Handler) CreateRecord(c *fiber.Ctx) error {
	user, kind, status, message := recordUserAndKind(c)
	if status != 0 {
		return apiError(c, status, message)
	}

	input, ok := parseRecordInput(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	record, err := handler.recordService.Create(c.UserContext(), user.ID, kind, input.Fields)
	if err != nil {
		return handler.respondRecordError(c, err, "failed to create record")
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (handler *Handler) UpdateRecord(c *fiber.Ctx) error {
	user, kind, status, message := recordUserAndKind(c)
	if status != 0 {
		return apiError(c, status, message)
	}

	input, ok := parseRecordInput(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	record, err := handler.recordService.Update(c.UserContext(), user.ID, kind, c.Params("id"), input.Fields)
	if err != nil {
		return handler.respondRecordError(c, err, "failed to update record")
	}
	return c.JSON(record)
}

func (handler *Handler) DeleteRecord(c *fiber.Ctx) error {
	user, kind, status, message := recordUserAndKind(c)
	if status != 0 {
		return apiError(c, status, message)
	}

	if err := handler.recordService.Delete(c.UserContext(), user.ID, kind, c.Params("id")); err != nil {
		return handler.respondRecordError(c, err, "failed to delete record")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func recordUserAndKind(c *fiber.Ctx) (*models.User, models.RecordKind, int, string) {
	user, ok := currentUser(c)
	if !ok {
		return nil, "", fiber.StatusUnauthorized, "unauthorized"
	}
	kind, ok := models.ParseRecordKind(c.Params("kind"))
	if !ok {
		return nil, "", fiber.StatusNotFound, "unknown record kind"
	}
	return user, kind, 0, ""
}

func parseRecordInput(c *fiber.Ctx) (recordInput, bool) {
	input := recordInput{}
	if err := c.BodyParser(&input); err != nil {
		return recordInput{}, false
	}
	if input.Fields == nil {
		input.Fields = map[string]string{}
	}
	return input, true
}
