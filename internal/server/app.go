// Package server wires configuration, storage, services and the HTTP API
// into a runnable application with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophusers/internal/logging"
	"github.com/dmitrijs2005/gophusers/internal/server/auth"
	"github.com/dmitrijs2005/gophusers/internal/server/config"
	httpapi "github.com/dmitrijs2005/gophusers/internal/server/http"
	"github.com/dmitrijs2005/gophusers/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophusers/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  *repomanager.Store
	server *httpapi.HTTPServer
}

// NewApp opens the store, applies migrations and builds the HTTP server.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewJSONLogger(os.Stdout, level)

	store, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := store.Manager.RunMigrations(ctx, store.DB); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}
	logger.Info(ctx, "store ready", "driver", store.Driver)

	hasher := auth.NewBcryptHasher(c.BcryptCost)
	us := services.NewUserService(store.DB, store.Manager, logger)
	as := services.NewAuthService(us, hasher, []byte(c.SecretKey), c.AccessTokenValidityDuration, logger)

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Users:              us,
		Auth:               as,
		Health:             us,
		Authorizer:         auth.NewJWTAuthorizer([]byte(c.SecretKey)),
		Hasher:             hasher,
		Logger:             logger,
		CORSAllowedOrigins: c.CORSAllowedOrigins,
	})

	return &App{
		config: c,
		logger: logger,
		store:  store,
		server: httpapi.NewHTTPServer(c.HTTPAddr, router, logger, c.ShutdownTimeout),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is canceled or a termination signal arrives, then
// closes the store.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.HTTPAddr)

	app.initSignalHandler(cancelFunc)

	runErr := app.server.Run(ctx)
	if runErr != nil {
		app.logger.Error(ctx, "http server failed", "error", runErr)
	}

	if err := app.store.Close(); err != nil {
		app.logger.Error(ctx, "closing store", "error", err)
	}
	app.logger.Info(ctx, "app stopped")
	return runErr
}
