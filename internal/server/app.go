// Package server wires configuration, storage, services and the HTTP API
// into a runnable application and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/budgettracker/internal/logging"
	"github.com/dmitrijs2005/budgettracker/internal/server/config"
	"github.com/dmitrijs2005/budgettracker/internal/server/httpapi"
	"github.com/dmitrijs2005/budgettracker/internal/server/objectstore"
	"github.com/dmitrijs2005/budgettracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/budgettracker/internal/server/services"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	identity     *services.IdentityService
	transactions *services.TransactionService
	summaries    *services.SummaryService
	exports      *services.ExportService
}

// OpenStore connects to PostgreSQL and applies migrations, or returns the
// in-memory manager and a nil *sql.DB when the config asks for it.
func OpenStore(ctx context.Context, cfg *config.Config) (*sql.DB, repomanager.RepositoryManager, error) {
	if cfg.UseMemoryStore() {
		return nil, repomanager.NewInMemoryRepositoryManager(), nil
	}

	db, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrations error: %w", err)
	}
	return db, m, nil
}

// NewObjectStore builds the S3 client used for CSV exports.
func NewObjectStore(ctx context.Context, c *config.Config) (objectstore.Store, error) {
	s, err := objectstore.NewS3Store(ctx, objectstore.Options{
		Region:       c.S3Region,
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
		Bucket:       c.S3Bucket,
		BaseEndpoint: c.S3BaseEndpoint,
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, m, err := OpenStore(ctx, c)
	if err != nil {
		return nil, err
	}

	store, err := NewObjectStore(ctx, c)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, fmt.Errorf("object store init error: %w", err)
	}

	summaries := services.NewSummaryService(db, m, logger)

	return &App{
		config:       c,
		logger:       logger,
		db:           db,
		repomanager:  m,
		identity:     services.NewIdentityService(db, m, c, logger),
		transactions: services.NewTransactionService(db, m, logger),
		summaries:    summaries,
		exports:      services.NewExportService(summaries, store, c.ExportURLValidityDuration, logger),
	}, nil
}

func (app *App) newHTTPServer() *httpapi.Server {
	return httpapi.NewServer(app.config.HTTPAddr, app.logger, httpapi.Deps{
		Identity:     app.identity,
		Transactions: app.transactions,
		Summaries:    app.summaries,
		Exporter:     app.exports,
	}, app.config.ShutdownTimeout)
}

// Run serves the API and purges expired refresh tokens until ctx is
// cancelled or SIGINT/SIGTERM/SIGQUIT arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "memory_store", app.config.UseMemoryStore())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.newHTTPServer().Run(ctx)
	})
	g.Go(func() error {
		return app.purgeLoop(ctx)
	})

	err := g.Wait()
	if closeErr := app.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	app.logger.Info(context.Background(), "App stopped")
	return err
}

func (app *App) purgeLoop(ctx context.Context) error {
	ticker := time.NewTicker(app.config.TokenPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			app.purgeOnce(ctx)
		}
	}
}

func (app *App) purgeOnce(ctx context.Context) {
	n, err := app.identity.PurgeExpiredTokens(ctx)
	if err != nil {
		app.logger.Error(ctx, "refresh token purge failed", "error", err)
		return
	}
	if n > 0 {
		app.logger.Info(ctx, "expired refresh tokens purged", "count", n)
	}
}

// Close releases the database pool, if any.
func (app *App) Close() error {
	if app.db == nil {
		return nil
	}
	return app.db.Close()
}
