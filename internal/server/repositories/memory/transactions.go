package memory

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/budgettracker/internal/common"
	"github.com/dmitrijs2005/budgettracker/internal/server/models"
	"github.com/google/uuid"
)

type TransactionsRepository struct {
	s *Store
}

func (r *TransactionsRepository) Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	tx.CreatedAt = r.s.now().UTC()
	r.s.transactions[tx.ID] = *tx
	return tx, nil
}

func (r *TransactionsRepository) Get(ctx context.Context, userID, id string) (*models.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.transactions[id]
	if !ok || t.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

func (r *TransactionsRepository) ListByUser(ctx context.Context, userID string) ([]*models.Transaction, error) {
	return r.list(userID, func(string) bool { return true }), nil
}

func (r *TransactionsRepository) ListByUserInRange(ctx context.Context, userID, start, end string) ([]*models.Transaction, error) {
	return r.list(userID, func(date string) bool { return date >= start && date < end }), nil
}

func (r *TransactionsRepository) list(userID string, keep func(date string) bool) []*models.Transaction {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.Transaction, 0)
	for _, t := range r.s.transactions {
		if t.UserID == userID && keep(t.Date) {
			t := t
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *TransactionsRepository) Update(ctx context.Context, tx *models.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.transactions[tx.ID]
	if !ok || t.UserID != tx.UserID {
		return common.ErrorNotFound
	}
	t.ItemName = tx.ItemName
	t.Amount = tx.Amount
	t.Category = tx.Category
	t.Date = tx.Date
	r.s.transactions[tx.ID] = t
	return nil
}

func (r *TransactionsRepository) Delete(ctx context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if t, ok := r.s.transactions[id]; ok && t.UserID == userID {
		delete(r.s.transactions, id)
	}
	return nil
}
