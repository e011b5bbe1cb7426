package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/userbooks/internal/auth"
	"github.com/mrlokans/userbooks/internal/config"
	"github.com/mrlokans/userbooks/internal/database"
	"github.com/mrlokans/userbooks/internal/database/authorship"
	"github.com/mrlokans/userbooks/internal/database/users"
	http_controllers "github.com/mrlokans/userbooks/internal/http"
	"github.com/mrlokans/userbooks/internal/logging"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds everything the server needs once it is wired.
type App struct {
	DB     *database.Database
	Router *gin.Engine
}

// Close releases the database.
func (a *App) Close() error {
	return a.DB.Close()
}

// Build opens the database, prepares the schema as configured and wires the
// router to it.
func Build(ctx context.Context, cfg *config.Config, logger *logrus.Logger, version string) (*App, error) {
	db, err := database.NewDatabase(cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Database.MigrateOnStart {
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
	} else {
		logger.Info("MIGRATE_ON_START is disabled, leaving the schema untouched")
	}

	if cfg.Database.SeedOnStart {
		if _, err := db.Seed(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}

	gate := auth.NewAPIKeyMiddleware(cfg.Auth)
	if !gate.Enabled() {
		logger.Warn("API_KEY is not set. Every protected endpoint will answer 401.")
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Users:      users.NewRepository(db.DB),
		Authorship: authorship.NewRepository(db.DB),
		Database:   db,
		APIKey:     gate,
		Logger:     logger,
		HSTS:       cfg.HTTP.HSTS,
		Version:    version,
	})

	return &App{DB: db, Router: router}, nil
}

// Serve listens on the configured address until ctx is done, then shuts the
// server down within the configured timeout.
func Serve(ctx context.Context, handler http.Handler, cfg *config.Config, logger *logrus.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	addr := net.JoinHostPort(cfg.HTTP.Host, fmt.Sprint(cfg.HTTP.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.WithField("addr", ln.Addr().String()).Info("starting server")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.WithField("timeout", timeout.String()).Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	shutdownErr := srv.Shutdown(shutdownCtx)

	// In-flight requests have drained (or timed out) by now.
	if onShutdown != nil {
		onShutdown(shutdownCtx)
	}
	if shutdownErr != nil {
		return fmt.Errorf("server shutdown: %w", shutdownErr)
	}

	logger.Info("server exited")
	return nil
}

// Run wires the application from cfg and serves it until SIGINT or SIGTERM.
func Run(cfg *config.Config, version string) error {
	logger, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	if !logger.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.WithField("version", version).Info("starting userbooks")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := Build(ctx, cfg, logger, version)
	if err != nil {
		return err
	}

	onShutdown := func(context.Context) {
		if err := app.Close(); err != nil {
			logger.WithError(err).Error("error closing database")
		}
	}

	return Serve(ctx, app.Router, cfg, logger, onShutdown)
}
