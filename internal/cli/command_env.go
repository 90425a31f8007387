package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/healthdash/internal/config"
	"github.com/terraincognita07/healthdash/internal/db"
	"github.com/terraincognita07/healthdash/internal/i18n"
	"github.com/terraincognita07/healthdash/internal/livingapps"
	"github.com/terraincognita07/healthdash/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// commandEnv holds what every subcommand resolves before doing its work.
type commandEnv struct {
	config       config.Config
	logger       *zap.Logger
	database     *gorm.DB
	repositories *db.Repositories
}

func loadRuntime(options *rootOptions) (*commandEnv, error) {
	if err := config.LoadDotEnv(options.envFile); err != nil {
		return nil, err
	}

	settings, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger, err := config.NewLogger(settings.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init failed: %w", err)
	}
	for _, warning := range settings.Warnings {
		logger.Warn(warning)
	}

	database, err := db.Open(settings.Database, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	return &commandEnv{
		config:       settings,
		logger:       logger,
		database:     database,
		repositories: db.NewRepositories(database),
	}, nil
}

func (rt *commandEnv) close() {
	if sqlDB, err := rt.database.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = rt.logger.Sync()
}

// recordStore returns the store selected by RECORD_SOURCE.
func (rt *commandEnv) recordStore() services.RecordStore {
	if rt.config.RecordSource == config.RecordSourceLivingApps {
		return rt.livingAppsClient()
	}
	return services.NewLocalRecordStore(rt.repositories.Records)
}

func (rt *commandEnv) livingAppsClient() *livingapps.Client {
	return livingapps.NewClient(rt.config.LivingApps, rt.logger)
}

func (rt *commandEnv) i18nManager() (*i18n.Manager, error) {
	manager, err := i18n.NewManager(rt.config.DefaultLanguage)
	if err != nil {
		return nil, fmt.Errorf("i18n init failed: %w", err)
	}
	return manager, nil
}

func (rt *commandEnv) findUser(authService *services.AuthService, email string) (uint, string, error) {
	if strings.TrimSpace(email) == "" {
		return 0, "", errors.New("--email is required")
	}
	user, err := authService.FindByEmail(email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAuthUserNotFound):
			return 0, "", fmt.Errorf("user %s not found", services.NormalizeAuthEmail(email))
		case errors.Is(err, services.ErrAuthCredentialsInvalid):
			return 0, "", fmt.Errorf("invalid email address %q", email)
		default:
			return 0, "", fmt.Errorf("load user: %w", err)
		}
	}
	return user.ID, user.Email, nil
}
