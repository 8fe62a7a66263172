// Package server initializes and runs the auth engine: database, schema
// migrations, session cache backend, secret cipher, and the HTTP endpoint,
// with graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/datamind-io/authcore/internal/logging"
	"github.com/datamind-io/authcore/internal/server/config"
	"github.com/datamind-io/authcore/internal/server/httpapi"
	"github.com/datamind-io/authcore/internal/server/repositories/repomanager"
	"github.com/datamind-io/authcore/internal/server/secrets"
	"github.com/datamind-io/authcore/internal/server/services"
	"github.com/datamind-io/authcore/internal/server/sessions"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	repos   repomanager.RepositoryManager
	service *services.SessionService
	api     *httpapi.API
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	cipher, err := secrets.New(cfg.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("cipher init error: %w", err)
	}

	store, backend, err := newSessionStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("session store init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	svc := services.NewSessionService(db, rm, store, cipher, cfg, logger)

	logger.Info(context.Background(), "auth engine configured",
		"session_backend", backend,
		"password_encryption", cipher.Available())
	if !cipher.Available() {
		logger.Warn(context.Background(), "no encryption key configured, data source passwords will be stored in the clear")
	}

	return &App{
		config:  cfg,
		logger:  logger,
		db:      db,
		repos:   rm,
		service: svc,
		api:     httpapi.New(svc, logger),
	}, nil
}

// newSessionStore selects the session cache backend from config: a Redis
// URL when one is given, the process-local store otherwise.
func newSessionStore(cfg *config.Config) (sessions.Store, string, error) {
	if cfg.RedisURL == "" {
		return sessions.NewMemoryStore(), "memory", nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, "", err
	}
	return sessions.NewRedisStore(redis.NewClient(opts)), "redis", nil
}

// Service exposes the session service for in-process consumers, notably the
// raw-credential retrieval path that is not routable over HTTP.
func (app *App) Service() *services.SessionService {
	return app.service
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	if err := app.repos.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migrations error: %w", err)
	}

	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: app.api.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting http server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "http shutdown error", "cause", err.Error())
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(shutdownCtx, "db close error", "cause", err.Error())
	}
	return nil
}
