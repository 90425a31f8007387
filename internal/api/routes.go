package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.CurrentUser)
	auth.Post("/change-password", handler.AuthRequired, handler.ChangePassword)

	records := api.Group("/records", handler.AuthRequired)
	records.Get("/:kind", handler.ListRecords)
	records.Post("/:kind", handler.CreateRecord)
	records.Get("/:kind/:id", handler.GetRecord)
	records.Patch("/:kind/:id", handler.UpdateRecord)
	records.Delete("/:kind/:id", handler.DeleteRecord)

	dashboard := api.Group("/dashboard", handler.AuthRequired)
	dashboard.Get("", handler.Dashboard)
	dashboard.Get("/trend", handler.DashboardTrend)
	dashboard.Get("/recent", handler.DashboardRecent)

	api.Post("/quick-entry", handler.AuthRequired, handler.QuickEntry)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/summary", handler.ExportSummary)
	export.Get("/csv", handler.ExportCSV)
	export.Get("/json", handler.ExportJSON)

	api.Use(handler.NotFound)
}
