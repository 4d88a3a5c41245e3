// Package admin implements budgetctl, the operator CLI: schema migrations,
// user registration, spending summaries and CSV exports.
package admin

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/budgettracker/internal/buildinfo"
	"github.com/dmitrijs2005/budgettracker/internal/logging"
	"github.com/dmitrijs2005/budgettracker/internal/server"
	"github.com/dmitrijs2005/budgettracker/internal/server/config"
	"github.com/dmitrijs2005/budgettracker/internal/server/objectstore"
	"github.com/dmitrijs2005/budgettracker/internal/server/repositories/repomanager"
	"github.com/spf13/cobra"
)

// OpenFunc opens the store selected by cfg.
type OpenFunc func(ctx context.Context, cfg *config.Config) (*sql.DB, repomanager.RepositoryManager, error)

// ObjectStoreFunc builds the export object store for cfg.
type ObjectStoreFunc func(ctx context.Context, cfg *config.Config) (objectstore.Store, error)

// Env is everything the commands touch outside the process.
type Env struct {
	In          io.Reader
	Out         io.Writer
	Err         io.Writer
	Open        OpenFunc
	ObjectStore ObjectStoreFunc
	HTTPClient  *http.Client
}

type rootOptions struct {
	configFile string
	dsn        string
	logLevel   string
}

// NewRootCommand builds the budgetctl command tree.
func NewRootCommand(env Env) *cobra.Command {
	if env.Open == nil {
		env.Open = server.OpenStore
	}
	if env.ObjectStore == nil {
		env.ObjectStore = server.NewObjectStore
	}

	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "budgetctl",
		Short:         "Administer a budget tracker deployment",
		Version:       buildinfo.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(env.In)
	root.SetOut(env.Out)
	root.SetErr(env.Err)

	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "JSON or YAML server config file")
	root.PersistentFlags().StringVarP(&opts.dsn, "dsn", "d", "", "database DSN, or \"memory\"")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level")

	root.AddCommand(
		newMigrateCommand(env, opts),
		newRegisterCommand(env, opts),
		newSummaryCommand(env, opts),
		newExportCommand(env, opts),
	)
	return root
}

// session is an opened store plus what the commands need around it.
type session struct {
	cfg    *config.Config
	db     *sql.DB
	rm     repomanager.RepositoryManager
	logger logging.Logger
}

func (s *session) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func openSession(ctx context.Context, env Env, opts *rootOptions) (*session, error) {
	var args []string
	if opts.configFile != "" {
		args = append(args, "-c", opts.configFile)
	}
	if opts.dsn != "" {
		args = append(args, "-d", opts.dsn)
	}

	cfg, err := config.Load(args)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	db, rm, err := env.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:    cfg,
		db:     db,
		rm:     rm,
		logger: logging.NewTextLogger(env.Err, logging.ParseLevel(opts.logLevel)),
	}, nil
}
