package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/healthdash/internal/api"
	"github.com/terraincognita07/healthdash/internal/config"
	"github.com/terraincognita07/healthdash/internal/i18n"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServeCommand(cmd, options)
		},
	}
}

func runServeCommand(cmd *cobra.Command, options *rootOptions) error {
	rt, err := loadRuntime(options)
	if err != nil {
		return err
	}
	defer rt.close()

	secretKey, err := config.ResolveSecretKey()
	if err != nil {
		return err
	}
	i18nManager, err := rt.i18nManager()
	if err != nil {
		return err
	}

	app, err := newServerApp(rt, secretKey, i18nManager)
	if err != nil {
		return err
	}
	return serve(cmd.Context(), app, rt)
}

func newServerApp(rt *commandEnv, secretKey string, i18nManager *i18n.Manager) (*fiber.App, error) {
	handler, err := api.NewHandler(rt.database, api.Options{
		SecretKey:        secretKey,
		Location:         rt.config.Location,
		CookieSecure:     rt.config.CookieSecure,
		I18n:             i18nManager,
		Logger:           rt.logger,
		RecordStore:      rt.recordStore(),
		RegistrationMode: rt.config.Registration,
	})
	if err != nil {
		return nil, fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "healthdash",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)
	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app, nil
}

func serve(ctx context.Context, app *fiber.App, rt *commandEnv) error {
	if ctx == nil {
		ctx = context.Background()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			rt.logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	rt.logger.Info("healthdash listening",
		zap.String("addr", "0.0.0.0:"+rt.config.Port),
		zap.String("db_driver", rt.config.Database.Driver),
		zap.String("record_source", rt.config.RecordSource),
		zap.String("registration", string(rt.config.Registration)),
		zap.String("tz", rt.config.Location.String()),
	)
	if err := app.Listen(":" + rt.config.Port); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}
