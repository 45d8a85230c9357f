// Package server wires the CASIEC backend together: storage, the auth and
// content services and the HTTP API. It also handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/casiec/internal/logging"
	"github.com/dmitrijs2005/casiec/internal/server/config"
	"github.com/dmitrijs2005/casiec/internal/server/httpapi"
	"github.com/dmitrijs2005/casiec/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/casiec/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config         *config.Config
	logger         logging.Logger
	repomanager    repomanager.RepositoryManager
	authService    *services.AuthService
	contentService *services.ContentService
}

// NewApp opens storage and builds the services. An empty DatabaseDSN keeps
// everything in memory.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogLevel, c.LogFormat)

	var rm repomanager.RepositoryManager
	if c.DatabaseDSN == "" {
		logger.Warn(ctx, "no database configured, data will not survive a restart")
		rm = repomanager.NewInMemoryRepositoryManager()
	} else {
		pm, err := repomanager.NewPostgresRepositoryManager(c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		rm = pm
	}

	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	var images services.ImageStore
	if c.S3Bucket != "" {
		store, err := services.NewS3ImageStore(ctx, c)
		if err != nil {
			_ = rm.Close()
			return nil, err
		}
		images = store
	} else {
		logger.Info(ctx, "no S3 bucket configured, image uploads are disabled")
	}

	sender := services.LogCodeSender{Logger: logger.With("module", "code_sender")}
	as := services.NewAuthService(rm, sender, c, logger.With("module", "auth_service"))
	if err := as.SeedAdmin(ctx, c.AdminEmail, c.AdminPassword); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	cs := services.NewContentService(rm, images, logger.With("module", "content_service"))

	return &App{config: c, logger: logger, repomanager: rm, authService: as, contentService: cs}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) handler() http.Handler {
	return httpapi.NewRouter(app.authService, app.contentService, app.logger,
		httpapi.RouterOptions{AllowedOrigins: app.config.AllowedOrigins})
}

// serve runs the HTTP server on l until ctx is done, then drains in-flight
// requests.
func (app *App) serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           app.handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "graceful shutdown failed", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", l.Addr().String())
	if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	l, err := net.Listen("tcp", app.config.Addr)
	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}
	if err := app.serve(ctx, l); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or the process receives a stop signal.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(ctx, "closing storage", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
