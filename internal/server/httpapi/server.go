// Package httpapi exposes the budget tracker over JSON/HTTP: registration
// and token sessions, principal-scoped transaction CRUD, spending summaries
// and CSV exports.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/budgettracker/internal/logging"
	"github.com/dmitrijs2005/budgettracker/internal/server/aggregate"
	"github.com/dmitrijs2005/budgettracker/internal/server/models"
	"github.com/dmitrijs2005/budgettracker/internal/server/services"
)

// Identity is the part of services.IdentityService the API needs.
type Identity interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	PrincipalFromAccessToken(ctx context.Context, token string) (models.Principal, error)
}

type Transactions interface {
	Create(ctx context.Context, p models.Principal, in models.TransactionInput) (string, error)
	List(ctx context.Context, p models.Principal) ([]*models.Transaction, error)
	ListInRange(ctx context.Context, p models.Principal, start, end string) ([]*models.Transaction, error)
	Get(ctx context.Context, p models.Principal, id string) (*models.Transaction, error)
	Update(ctx context.Context, p models.Principal, id string, in models.TransactionInput) error
	Delete(ctx context.Context, p models.Principal, id string) error
}

type Summaries interface {
	Detailed(ctx context.Context, p models.Principal, q services.PeriodQuery) (*services.DetailedSummary, error)
	Series(ctx context.Context, p models.Principal, g aggregate.Granularity) ([]aggregate.Bucket, error)
	Overview(ctx context.Context, p models.Principal) (*aggregate.Overview, error)
}

type Exporter interface {
	Export(ctx context.Context, p models.Principal, q services.PeriodQuery) (*services.ExportResult, error)
}

// Deps are the services behind the API.
type Deps struct {
	Identity     Identity
	Transactions Transactions
	Summaries    Summaries
	Exporter     Exporter
}

type Server struct {
	address         string
	deps            Deps
	logger          logging.Logger
	shutdownTimeout time.Duration
	handler         http.Handler
}

func NewServer(address string, l logging.Logger, deps Deps, shutdownTimeout time.Duration) *Server {
	s := &Server{
		address:         address,
		deps:            deps,
		logger:          l.With("module", "http_server"),
		shutdownTimeout: shutdownTimeout,
	}
	s.handler = s.routes()
	return s
}

// Handler returns the fully wired handler, middleware included.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run over an existing listener.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-done
}
