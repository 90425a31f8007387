package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// LanguageMiddleware picks the response language from ?lang=, the language
// cookie, then Accept-Language, and stores the message catalogue in locals.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	cookieLanguage := c.Cookies(languageCookieName)
	queryLanguage := strings.TrimSpace(c.Query("lang"))

	var language string
	switch {
	case queryLanguage != "" && handler.i18n.IsSupported(queryLanguage):
		language = handler.i18n.NormalizeLanguage(queryLanguage)
	case cookieLanguage != "":
		language = handler.i18n.NormalizeLanguage(cookieLanguage)
	default:
		language = handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
	}

	if cookieLanguage != language {
		handler.setLanguageCookie(c, language)
	}

	c.Locals(contextLanguageKey, language)
	c.Locals(contextMessagesKey, handler.i18n.Messages(language))
	c.Set(fiber.HeaderContentLanguage, language)
	return c.Next()
}

func (handler *Handler) setLanguageCookie(c *fiber.Ctx, language string) {
	c.Cookie(&fiber.Cookie{
		Name:     languageCookieName,
		Value:    handler.i18n.NormalizeLanguage(language),
		Path:     "/",
		HTTPOnly: false,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  handler.now().AddDate(1, 0, 0),
	})
}
