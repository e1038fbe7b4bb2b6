package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/homelibrary/internal/config"
	"github.com/mrlokans/homelibrary/internal/covers"
	"github.com/mrlokans/homelibrary/internal/database"
	"github.com/mrlokans/homelibrary/internal/database/books"
	"github.com/mrlokans/homelibrary/internal/database/journals"
	"github.com/mrlokans/homelibrary/internal/database/lists"
	"github.com/mrlokans/homelibrary/internal/database/ratings"
	"github.com/mrlokans/homelibrary/internal/database/statuses"
	"github.com/mrlokans/homelibrary/internal/database/tags"
	"github.com/mrlokans/homelibrary/internal/database/users"
	http_controllers "github.com/mrlokans/homelibrary/internal/http"
	"github.com/mrlokans/homelibrary/internal/scheduler"
	"github.com/mrlokans/homelibrary/internal/services"
	"github.com/mrlokans/homelibrary/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App is the wired server: the HTTP handler and the background workers it
// depends on.
type App struct {
	Handler http.Handler

	db        *database.Database
	taskQueue *tasks.Client
	backfill  *scheduler.CoverBackfillScheduler
	logger    *zap.Logger
}

// NewApp opens the database and wires repositories, cover enrichment, the
// optional background workers and the router. Workers are started with ctx.
func NewApp(ctx context.Context, cfg *config.Config, version string, logger *zap.Logger) (*App, error) {
	db, err := database.NewDatabase(cfg.Database.Path,
		database.WithLogger(logger),
		database.WithQueryLogging(cfg.Database.LogQueries),
		database.WithMaxOpenConns(cfg.Database.MaxOpenConns),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	app := &App{db: db, logger: logger}

	bookRepo := books.NewRepository(db.DB)

	coverClient := covers.NewClient(covers.ClientConfig{
		APIURL:         cfg.Covers.APIURL,
		OpenLibraryURL: cfg.Covers.OpenLibraryURL,
		RateLimit:      cfg.Covers.RateLimit,
		Timeout:        cfg.Covers.Timeout,
	}, logger)
	enricher := covers.NewEnricher(coverClient, bookRepo, logger)

	var hook services.PostCreateHook
	switch {
	case cfg.Covers.Enabled && cfg.Tasks.Enabled:
		client, err := tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}, logger)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("create task queue: %w", err)
		}
		client.Register(tasks.NewFetchCoverQueue(enricher, logger))
		client.Start(ctx)
		app.taskQueue = client
		hook = tasks.NewCoverEnqueuer(client, logger)
		logger.Info("cover lookups run on the task queue")
	case cfg.Covers.Enabled:
		hook = enricher
		logger.Info("cover lookups run on create")
	default:
		logger.Info("cover lookups disabled")
	}

	if cfg.CoverBackfill.Enabled {
		backfill := scheduler.NewCoverBackfillScheduler(enricher, cfg.CoverBackfill.Schedule, logger)
		if err := backfill.Start(ctx); err != nil {
			app.Close()
			return nil, fmt.Errorf("start cover backfill: %w", err)
		}
		app.backfill = backfill
	}

	if cfg.Demo.Enabled {
		logger.Info("demo mode enabled, write operations will be blocked")
	}

	app.Handler = http_controllers.NewRouter(http_controllers.RouterConfig{
		Books:              services.NewBookService(bookRepo, hook),
		Journals:           journals.NewRepository(db.DB),
		Ratings:            ratings.NewRepository(db.DB),
		Statuses:           statuses.NewRepository(db.DB),
		Tags:               tags.NewRepository(db.DB),
		Genres:             tags.NewGenreRepository(db.DB),
		Users:              users.NewRepository(db.DB),
		Lists:              lists.NewRepository(db.DB),
		Database:           db,
		Logger:             logger,
		CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		DemoMode:           cfg.Demo.Enabled,
		Version:            version,
	})

	return app, nil
}

// Shutdown stops the background workers, waiting at most until ctx is done.
func (a *App) Shutdown(ctx context.Context) {
	if a.backfill != nil {
		a.backfill.Stop()
	}
	if a.taskQueue != nil {
		a.taskQueue.Stop(ctx)
	}
}

// Close releases the databases. Call it after Shutdown.
func (a *App) Close() {
	if a.taskQueue != nil {
		if err := a.taskQueue.Close(); err != nil {
			a.logger.Warn("failed to close task queue database", zap.Error(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", zap.Error(err))
	}
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully within the configured timeout.
func Serve(ctx context.Context, handler http.Handler, cfg *config.Config, logger *zap.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server", zap.Duration("timeout", timeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work first so nothing new is queued mid-shutdown.
	if onShutdown != nil {
		onShutdown(shutdownCtx)
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}

// Run wires the application and serves it until SIGINT or SIGTERM.
func Run(cfg *config.Config, version string, logger *zap.Logger) error {
	logger.Info("starting home library", zap.String("version", version))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, cfg, version, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	return Serve(ctx, app.Handler, cfg, logger, app.Shutdown)
}
