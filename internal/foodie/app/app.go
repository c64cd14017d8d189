package app

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/foodiehq/foodie/internal/foodie/http"
	"github.com/foodiehq/foodie/internal/foodie/service"
	"github.com/foodiehq/foodie/internal/foodie/store"
	"github.com/foodiehq/foodie/internal/foodie/store/drivers/sqlite"
	"github.com/foodiehq/foodie/pkg/cryptox"
	"github.com/foodiehq/foodie/pkg/jwtx"
	"github.com/foodiehq/foodie/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the foodie service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	sessionCodec *jwtx.Codec
	inviteCodec  *jwtx.Codec

	sessionService *service.SessionService
	inviteService  *service.InviteService
	partnerService *service.PartnerService
	accountService *service.AccountService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "foodie",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initSecrets(); err != nil {
		return nil, err
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	if err := app.seedAdmin(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("foodie service starting", "port", app.cfg.Port, "version", BuildVersion)

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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down foodie service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("foodie service stopped")
	return nil
}

// initSecrets fills in missing token secrets. Production must configure both;
// dev gets random per-process secrets so tokens stop working across restarts.
func (app *Application) initSecrets() error {
	if len(app.cfg.SessionSecret) != 0 && len(app.cfg.InviteSecret) != 0 {
		return nil
	}
	if app.cfg.Env != "dev" {
		return fmt.Errorf("FOODIE_SESSION_SECRET and FOODIE_INVITE_SECRET are required outside dev")
	}

	if len(app.cfg.SessionSecret) == 0 {
		app.cfg.SessionSecret = randomSecret()
		app.logger.Warn("FOODIE_SESSION_SECRET not set, generated ephemeral dev secret")
	}
	if len(app.cfg.InviteSecret) == 0 {
		app.cfg.InviteSecret = randomSecret()
		app.logger.Warn("FOODIE_INVITE_SECRET not set, generated ephemeral dev secret")
	}
	return nil
}

func randomSecret() []byte {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return b
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
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

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.sessionCodec = jwtx.NewCodec(app.cfg.SessionSecret, app.cfg.Issuer)
	app.inviteCodec = jwtx.NewCodec(app.cfg.InviteSecret, app.cfg.Issuer)

	app.sessionService = &service.SessionService{
		Store:     app.db,
		Codec:     app.sessionCodec,
		AccessTTL: app.cfg.AccessTTL,
	}
	app.inviteService = &service.InviteService{
		Store:     app.db,
		Codec:     app.inviteCodec,
		InviteTTL: app.cfg.InviteTTL,
	}
	app.partnerService = &service.PartnerService{Store: app.db}
	app.accountService = &service.AccountService{Store: app.db}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.sessionCodec, BuildVersion, app.db, app.logger)

	router.SessionService = app.sessionService
	router.InviteService = app.inviteService
	router.PartnerService = app.partnerService
	router.AccountService = app.accountService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

// seedAdmin creates the configured first platform admin, if any.
func (app *Application) seedAdmin() error {
	if app.cfg.AdminEmail == "" || app.cfg.AdminPassword == "" {
		return nil
	}

	ctx := slogx.WithContext(context.Background(), app.logger)
	if err := app.accountService.SeedAdmin(ctx, app.cfg.AdminEmail, app.cfg.AdminPassword); err != nil {
		return fmt.Errorf("failed to seed platform admin: %w", err)
	}
	return nil
}
