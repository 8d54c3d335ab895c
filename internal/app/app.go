package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/courtside/leagueauth/internal/http"
	"github.com/courtside/leagueauth/internal/service"
	"github.com/courtside/leagueauth/internal/store"
	"github.com/courtside/leagueauth/internal/store/drivers/sqlite"
	"github.com/courtside/leagueauth/pkg/cryptox"
	"github.com/courtside/leagueauth/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application wires the account service together: store, services, HTTP.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	registrar    *service.RegistrarService
	sessions     *service.SessionService
	inviteKeys   *service.InviteKeyService
	housekeeping *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "leagueauth",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	pepper, err := cryptox.LoadOrCreatePepper(cfg.PepperFile)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	app.initServices(pepper)
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeeping.Start()

	app.logger.Info("leagueauth starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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

// Shutdown drains in-flight requests, stops housekeeping, closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down leagueauth...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeeping.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("leagueauth stopped")
	return nil
}

func (app *Application) initDatabase() error {
	// modernc.org/sqlite takes pragmas as _pragma=name(value) query params;
	// mattn-style _busy_timeout/_journal_mode keys are silently ignored.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initServices(pepper string) {
	app.sessions = &service.SessionService{
		Store: app.db,
		TTL:   app.cfg.SessionTTL,
	}
	app.inviteKeys = &service.InviteKeyService{Store: app.db}
	app.registrar = &service.RegistrarService{
		Store:    app.db,
		Hasher:   cryptox.Hasher{Pepper: pepper},
		Invites:  app.inviteKeys,
		Sessions: app.sessions,
	}
	app.housekeeping = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.cfg.AdminToken, app.db, app.logger)

	router.Registrar = app.registrar
	router.SessionService = app.sessions
	router.InviteKeys = app.inviteKeys
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
