package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/myskills/internal/skills/http"
	"github.com/aussiebroadwan/myskills/internal/skills/identity"
	"github.com/aussiebroadwan/myskills/internal/skills/service"
	"github.com/aussiebroadwan/myskills/internal/skills/store"
	"github.com/aussiebroadwan/myskills/internal/skills/store/drivers/postgres"
	"github.com/aussiebroadwan/myskills/internal/skills/store/drivers/sqlite"
	"github.com/aussiebroadwan/myskills/pkg/cryptox"
	"github.com/aussiebroadwan/myskills/pkg/slogx"
)

// BuildVersion is overridden at build time with
// -ldflags "-X github.com/aussiebroadwan/myskills/internal/skills/app.BuildVersion=..."
var BuildVersion = "v0.1.0"

// Application encapsulates the skills service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db        store.Store
	directory *identity.Directory
	keys      *SessionKeys

	// Services
	skillService        *service.SkillService
	sessionService      *service.SessionService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "skills",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// The pepper must be in place before the directory hashes default passwords
	if err := cryptox.LoadPepper(cfg.PepperFile); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	directory, err := identity.Load(cfg.UsersFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	app.directory = directory
	app.logger.Info("user directory loaded", "users", directory.Usernames())

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keys, err := InitSessionKeys(cfg, service.Issuer, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.keys = keys

	app.initServices()
	if err := app.initHTTP(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("skills service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down skills service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("skills service stopped")
	return nil
}

// initDatabase opens the configured store and applies migrations
func (app *Application) initDatabase() error {
	db, err := openStore(app.cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

func openStore(cfg Config) (store.Store, error) {
	switch cfg.DatabaseDriver {
	case "postgres":
		return postgres.NewStore(cfg.DatabaseURL)
	case "sqlite":
		return sqlite.NewStore("file:" + cfg.DatabaseFile)
	default:
		return nil, ErrUnknownDriver
	}
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.skillService = &service.SkillService{
		Store:            app.db,
		EnforceOwnership: app.cfg.EnforceOwnership,
	}
	if app.cfg.EnforceOwnership {
		app.logger.Info("skill ownership enforced")
	}

	app.sessionService = &service.SessionService{
		Store:     app.db,
		Directory: app.directory,
		Signer:    app.keys.Signer,
		Verifier:  app.keys.Verifier,
		TTL:       app.cfg.SessionTTL,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() error {
	views, err := httpapi.NewViews()
	if err != nil {
		return fmt.Errorf("failed to load views: %w", err)
	}

	router := httpapi.NewRouter(
		views,
		app.keys.KeySet,
		httpapi.CookieConfig{Secure: app.cfg.CookieSecure},
		BuildVersion,
		app.db,
		app.logger,
	)

	router.SkillService = app.skillService
	router.SessionService = app.sessionService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}
