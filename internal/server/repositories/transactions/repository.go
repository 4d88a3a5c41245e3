// Package transactions declares the transactions collection contract and its
// PostgreSQL implementation. Every method takes the owner's user id and folds
// it into the query predicate: a foreign transaction looks exactly like a
// missing one.
package transactions

import (
	"context"

	"github.com/dmitrijs2005/budgettracker/internal/server/models"
)

type Repository interface {
	// Create assigns a new ID when tx.ID is empty and stores tx.
	Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)

	// Get returns common.ErrorNotFound when id is absent or owned by someone else.
	Get(ctx context.Context, userID, id string) (*models.Transaction, error)

	ListByUser(ctx context.Context, userID string) ([]*models.Transaction, error)

	// ListByUserInRange returns transactions with start <= date < end.
	ListByUserInRange(ctx context.Context, userID, start, end string) ([]*models.Transaction, error)

	// Update overwrites the mutable fields of the transaction matching both
	// tx.ID and tx.UserID, or returns common.ErrorNotFound.
	Update(ctx context.Context, tx *models.Transaction) error

	// Delete removes the matching transaction. Missing ids are not an error.
	Delete(ctx context.Context, userID, id string) error
}
