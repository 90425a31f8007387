package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthdash/internal/services"
	"github.com/terraincognita07/healthdash/internal/wellbeing"
	"go.uber.org/zap"
)

// summaryText carries the localized wording of the summary card.
type summaryText struct {
	Direction  string `json:"direction"`
	Band       string `json:"band"`
	DisplayDay string `json:"display_day"`
}

type dashboardResponse struct {
	services.DashboardView
	Text summaryText `json:"text"`
}

func (handler *Handler) Dashboard(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	days, err := services.ParseTrendDays(c.Query("days"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid days")
	}
	limit, err := services.ParseRecentLimit(c.Query("limit"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid limit")
	}

	view, err := handler.dashboardService.Build(c.UserContext(), user.ID, handler.now(), services.DashboardOptions{
		Days:   days,
		Limit:  limit,
		Labels: currentLabels(c),
	})
	if err != nil {
		return handler.respondRecordError(c, err, "failed to build dashboard")
	}

	return c.JSON(dashboardResponse{
		DashboardView: view,
		Text:          localizedSummaryText(currentMessages(c), view.Summary),
	})
}

func (handler *Handler) DashboardTrend(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	days, err := services.ParseTrendDays(c.Query("days"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid days")
	}

	trend, err := handler.dashboardService.Trend(c.UserContext(), user.ID, handler.now(), days, currentLabels(c))
	if err != nil {
		return handler.respondRecordError(c, err, "failed to build trend")
	}
	return c.JSON(fiber.Map{"days": days, "trend": trend})
}

func (handler *Handler) DashboardRecent(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	limit, err := services.ParseRecentLimit(c.Query("limit"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid limit")
	}

	entries, err := handler.dashboardService.Recent(c.UserContext(), user.ID, limit, currentLabels(c))
	if err != nil {
		return handler.respondRecordError(c, err, "failed to load recent entries")
	}
	if entries == nil {
		entries = []wellbeing.Entry{}
	}
	return c.JSON(fiber.Map{"limit": limit, "entries": entries})
}

func (handler *Handler) QuickEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := services.QuickEntry{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	record, err := handler.dashboardService.QuickEntry(c.UserContext(), user.ID, handler.now(), input)
	if err != nil {
		if errors.Is(err, services.ErrQuickEntryIncomplete) {
			return apiError(c, fiber.StatusBadRequest, "symptom kind and rating are required")
		}
		return handler.respondRecordError(c, err, "failed to save entry")
	}

	handler.logger.Debug("quick entry saved", zap.Uint("user_id", user.ID), zap.String("record_id", record.ID))
	return c.Status(fiber.StatusCreated).JSON(record)
}

func localizedSummaryText(messages map[string]string, summary wellbeing.Summary) summaryText {
	return summaryText{
		Direction:  translateMessage(messages, "direction."+string(summary.Direction)),
		Band:       translateMessage(messages, "band."+string(summary.Band)),
		DisplayDay: translateMessage(messages, "score_day."+string(summary.DisplayDay)),
	}
}
