package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/healthdash/internal/db"
	"github.com/terraincognita07/healthdash/internal/i18n"
	"github.com/terraincognita07/healthdash/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour

	loginAttemptsLimit  = 8
	loginAttemptsWindow = 15 * time.Minute
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	i18n         *i18n.Manager
	logger       *zap.Logger
	now          func() time.Time
	loginLimiter *attemptLimiter

	repositories        *db.Repositories
	recordStore         services.RecordStore
	authService         *services.AuthService
	registrationService *services.RegistrationService
	recordService       *services.RecordService
	dashboardService    *services.DashboardService
	exportService       *services.ExportService
}

type Options struct {
	SecretKey    string
	Location     *time.Location
	CookieSecure bool
	I18n         *i18n.Manager
	Logger       *zap.Logger
	// RecordStore overrides the database backed store, for example with the
	// Living Apps client.
	RecordStore services.RecordStore
	// RegistrationMode controls self sign-up; empty means open.
	RegistrationMode services.RegistrationMode
}

type credentialsInput struct {
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	RememberMe      bool   `json:"remember_me" form:"remember_me"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

type recordInput struct {
	Fields map[string]string `json:"fields"`
}

func NewHandler(database *gorm.DB, options Options) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if options.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}
	if len(options.SecretKey) == 0 {
		return nil, errors.New("secret key is required")
	}
	location := options.Location
	if location == nil {
		location = time.UTC
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(options.SecretKey),
		location:     location,
		cookieSecure: options.CookieSecure,
		i18n:         options.I18n,
		logger:       logger.Named("api"),
		now:          time.Now,
		loginLimiter: newAttemptLimiter(loginAttemptsLimit, loginAttemptsWindow),
	}
	return handler.withDependencies(database, options.RecordStore, options.RegistrationMode), nil
}
