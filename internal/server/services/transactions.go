package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/budgettracker/internal/logging"
	"github.com/dmitrijs2005/budgettracker/internal/server/aggregate"
	"github.com/dmitrijs2005/budgettracker/internal/server/models"
	"github.com/dmitrijs2005/budgettracker/internal/server/repositories/repomanager"
)

// TransactionService is principal-scoped CRUD over a user's transactions.
// A transaction owned by someone else behaves exactly like a missing one.
type TransactionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewTransactionService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *TransactionService {
	return &TransactionService{
		db:          db,
		repomanager: m,
		log:         log.With("service", "transactions"),
	}
}

// Create stores a new transaction owned by p and returns its id.
func (s *TransactionService) Create(ctx context.Context, p models.Principal, in models.TransactionInput) (string, error) {
	if err := aggregate.ValidateAmount(in.Amount); err != nil {
		return "", err
	}

	tx := &models.Transaction{
		UserID:   p.ID,
		ItemName: in.ItemName,
		Amount:   in.Amount,
		Category: in.Category,
		Date:     in.Date,
	}

	created, err := s.repomanager.Transactions(s.db).Create(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("error creating transaction: %w", err)
	}

	s.log.Debug(ctx, "transaction created", "user_id", p.ID, "id", created.ID)
	return created.ID, nil
}

func (s *TransactionService) List(ctx context.Context, p models.Principal) ([]*models.Transaction, error) {
	items, err := s.repomanager.Transactions(s.db).ListByUser(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}
	return items, nil
}

// ListInRange returns p's transactions with start <= date < end.
func (s *TransactionService) ListInRange(ctx context.Context, p models.Principal, start, end string) ([]*models.Transaction, error) {
	items, err := s.repomanager.Transactions(s.db).ListByUserInRange(ctx, p.ID, start, end)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}
	return items, nil
}

// Get returns common.ErrorNotFound when id is absent or not owned by p.
func (s *TransactionService) Get(ctx context.Context, p models.Principal, id string) (*models.Transaction, error) {
	item, err := s.repomanager.Transactions(s.db).Get(ctx, p.ID, id)
	if err != nil {
		return nil, fmt.Errorf("error getting transaction %s: %w", id, err)
	}
	return item, nil
}

// Update overwrites every mutable field, or returns common.ErrorNotFound.
func (s *TransactionService) Update(ctx context.Context, p models.Principal, id string, in models.TransactionInput) error {
	if err := aggregate.ValidateAmount(in.Amount); err != nil {
		return err
	}

	err := s.repomanager.Transactions(s.db).Update(ctx, &models.Transaction{
		ID:       id,
		UserID:   p.ID,
		ItemName: in.ItemName,
		Amount:   in.Amount,
		Category: in.Category,
		Date:     in.Date,
	})
	if err != nil {
		return fmt.Errorf("error updating transaction %s: %w", id, err)
	}

	s.log.Debug(ctx, "transaction updated", "user_id", p.ID, "id", id)
	return nil
}

// Delete removes the transaction if p owns it. Missing ids are not an error.
func (s *TransactionService) Delete(ctx context.Context, p models.Principal, id string) error {
	if err := s.repomanager.Transactions(s.db).Delete(ctx, p.ID, id); err != nil {
		return fmt.Errorf("error deleting transaction %s: %w", id, err)
	}
	return nil
}
