package api

import (
	"github.com/terraincognita07/healthdash/internal/db"
	"github.com/terraincognita07/healthdash/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB, store services.RecordStore, registrationMode services.RegistrationMode) *Handler {
	handler.repositories = db.NewRepositories(database)
	if store == nil {
		store = services.NewLocalRecordStore(handler.repositories.Records)
	}
	handler.recordStore = store
	handler.authService = services.NewAuthService(handler.repositories.Users)
	handler.registrationService = services.NewRegistrationService(handler.repositories.Users, registrationMode)
	handler.recordService = services.NewRecordService(store, handler.location)
	handler.dashboardService = services.NewDashboardService(store, handler.location)
	handler.exportService = services.NewExportService(store, handler.location)
	return handler
}
