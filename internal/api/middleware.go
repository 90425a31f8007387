package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthdash/internal/models"
	"github.com/terraincognita07/healthdash/internal/wellbeing"
)

const (
	authCookieName     = "healthdash_auth"
	languageCookieName = "healthdash_lang"
	contextUserKey     = "current_user"
	contextLanguageKey = "current_language"
	contextMessagesKey = "current_messages"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok && user != nil
}

func currentMessages(c *fiber.Ctx) map[string]string {
	messages, _ := c.Locals(contextMessagesKey).(map[string]string)
	return messages
}

func currentLabels(c *fiber.Ctx) wellbeing.MapLabels {
	return wellbeing.MapLabels(currentMessages(c))
}

func translateMessage(messages map[string]string, key string) string {
	if value, ok := messages[key]; ok && value != "" {
		return value
	}
	return key
}
