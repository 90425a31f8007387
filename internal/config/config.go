// Package config resolves runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/terraincognita07/healthdash/internal/db"
	"github.com/terraincognita07/healthdash/internal/i18n"
	"github.com/terraincognita07/healthdash/internal/livingapps"
	"github.com/terraincognita07/healthdash/internal/models"
	"github.com/terraincognita07/healthdash/internal/services"
	"go.uber.org/zap/zapcore"
)

const (
	RecordSourceLocal      = "local"
	RecordSourceLivingApps = "livingapps"

	defaultPort   = "8080"
	minSecretSize = 32
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type Config struct {
	Port            string
	SecretKey       string
	Location        *time.Location
	Database        db.Options
	DefaultLanguage string
	CookieSecure    bool
	RecordSource    string
	LivingApps      livingapps.Config
	Registration    services.RegistrationMode
	LogLevel        zapcore.Level

	// Warnings collects settings that were ignored in favour of a default.
	Warnings []string
}

// LoadDotEnv reads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load resolves the settings every command needs. The secret key is only
// required by the HTTP server, see ResolveSecretKey.
func Load() (Config, error) {
	config := Config{
		DefaultLanguage: i18n.LangDE,
	}

	config.Location, config.Warnings = resolveLocation(getEnv("TZ", "UTC"), config.Warnings)

	port, err := resolvePort()
	if err != nil {
		return Config{}, err
	}
	config.Port = port

	database, err := resolveDatabaseOptions()
	if err != nil {
		return Config{}, err
	}
	config.Database = database

	if language := strings.TrimSpace(os.Getenv("DEFAULT_LANGUAGE")); language != "" {
		config.DefaultLanguage = strings.ToLower(language)
	}

	config.CookieSecure, err = resolveBool("COOKIE_SECURE", false)
	if err != nil {
		return Config{}, err
	}

	config.RecordSource, err = resolveRecordSource()
	if err != nil {
		return Config{}, err
	}

	config.LivingApps, err = resolveLivingAppsConfig()
	if err != nil {
		return Config{}, err
	}

	config.Registration, err = resolveRegistrationMode(config.RecordSource)
	if err != nil {
		return Config{}, err
	}

	config.LogLevel, err = resolveLogLevel()
	if err != nil {
		return Config{}, err
	}

	return config, nil
}

func ResolveSecretKey() (string, error) {
	return resolveSecretKey()
}

func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secret) < minSecretSize {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretSize)
	}
	return secret, nil
}

func resolvePort() (string, error) {
	raw := strings.TrimSpace(os.Getenv("PORT"))
	if raw == "" {
		return defaultPort, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("PORT must be a number between 1 and 65535, got %q", raw)
	}
	return strconv.Itoa(port), nil
}

func resolveLocation(name string, warnings []string) (*time.Location, []string) {
	location, err := time.LoadLocation(strings.TrimSpace(name))
	if err != nil {
		return time.UTC, append(warnings, fmt.Sprintf("invalid TZ %q, falling back to UTC", name))
	}
	return location, warnings
}

func resolveDatabaseOptions() (db.Options, error) {
	options := db.Options{
		Driver: strings.ToLower(getEnv("DB_DRIVER", db.DriverSQLite)),
		Path:   getEnv("DB_PATH", filepath.Join("data", "healthdash.db")),
		DSN:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
	}

	switch options.Driver {
	case db.DriverSQLite:
	case db.DriverPostgres:
		if options.DSN == "" {
			return db.Options{}, errors.New("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return db.Options{}, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", db.DriverSQLite, db.DriverPostgres, options.Driver)
	}
	return options, nil
}

func resolveRecordSource() (string, error) {
	source := strings.ToLower(getEnv("RECORD_SOURCE", RecordSourceLocal))
	switch source {
	case RecordSourceLocal, RecordSourceLivingApps:
		return source, nil
	default:
		return "", fmt.Errorf("RECORD_SOURCE must be %q or %q, got %q", RecordSourceLocal, RecordSourceLivingApps, source)
	}
}

// resolveRegistrationMode reads REGISTRATION_MODE. Every account shares the
// Living Apps data, so that source defaults to initial and refuses open.
func resolveRegistrationMode(recordSource string) (services.RegistrationMode, error) {
	fallback := services.RegistrationOpen
	if recordSource == RecordSourceLivingApps {
		fallback = services.RegistrationInitial
	}

	raw := strings.TrimSpace(os.Getenv("REGISTRATION_MODE"))
	if raw == "" {
		return fallback, nil
	}
	mode, ok := services.ParseRegistrationMode(raw)
	if !ok {
		return "", fmt.Errorf("REGISTRATION_MODE must be %q, %q or %q, got %q", services.RegistrationOpen, services.RegistrationInitial, services.RegistrationClosed, raw)
	}
	if mode == services.RegistrationOpen && recordSource == RecordSourceLivingApps {
		return "", errors.New("REGISTRATION_MODE=open is not allowed with RECORD_SOURCE=livingapps")
	}
	return mode, nil
}

var livingAppsAppEnv = map[models.RecordKind]string{
	models.KindMedication: "LIVINGAPPS_APP_MEDICATION",
	models.KindDaily:      "LIVINGAPPS_APP_DAILY",
	models.KindSymptom:    "LIVINGAPPS_APP_SYMPTOM",
	models.KindMeal:       "LIVINGAPPS_APP_MEAL",
}

func resolveLivingAppsConfig() (livingapps.Config, error) {
	config := livingapps.Config{
		BaseURL:  getEnv("LIVINGAPPS_BASE_URL", livingapps.DefaultBaseURL),
		Username: strings.TrimSpace(os.Getenv("LIVINGAPPS_USERNAME")),
		Password: os.Getenv("LIVINGAPPS_PASSWORD"),
		Timeout:  livingapps.DefaultTimeout,
		AppIDs:   map[models.RecordKind]string{},
	}

	if raw := strings.TrimSpace(os.Getenv("LIVINGAPPS_TIMEOUT")); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout <= 0 {
			return livingapps.Config{}, fmt.Errorf("LIVINGAPPS_TIMEOUT must be a positive duration, got %q", raw)
		}
		config.Timeout = timeout
	}

	for kind, key := range livingAppsAppEnv {
		if appID := strings.TrimSpace(os.Getenv(key)); appID != "" {
			config.AppIDs[kind] = appID
		}
	}
	return config, nil
}

func resolveLogLevel() (zapcore.Level, error) {
	raw := getEnv("LOG_LEVEL", "info")
	level, err := zapcore.ParseLevel(raw)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

func resolveBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback, fmt.Errorf("%s must be a boolean, got %q", key, raw)
	}
	return value, nil
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
