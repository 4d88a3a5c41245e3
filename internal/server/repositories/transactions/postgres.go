package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/budgettracker/internal/common"
	"github.com/dmitrijs2005/budgettracker/internal/dbx"
	"github.com/dmitrijs2005/budgettracker/internal/server/models"
	"github.com/google/uuid"
)

const selectColumns = `SELECT id, user_id, item_name, amount, category, date, created_at FROM transactions`

// PostgresRepository implements transaction storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	query := `
		INSERT INTO transactions (id, user_id, item_name, amount, category, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		tx.ID, tx.UserID, tx.ItemName, tx.Amount, tx.Category, tx.Date).Scan(&tx.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tx, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.Transaction, error) {
	if !isUUID(id) {
		return nil, common.ErrorNotFound
	}

	query := selectColumns + `
		WHERE id = $1 AND user_id = $2
	`
	item, err := scanTransaction(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Transaction, error) {
	query := selectColumns + `
		WHERE user_id = $1
		ORDER BY date, id
	`
	return r.list(ctx, query, userID)
}

// ListByUserInRange relies on the ISO date text sorting chronologically.
func (r *PostgresRepository) ListByUserInRange(ctx context.Context, userID, start, end string) ([]*models.Transaction, error) {
	query := selectColumns + `
		WHERE user_id = $1 AND date >= $2 AND date < $3
		ORDER BY date, id
	`
	return r.list(ctx, query, userID, start, end)
}

func (r *PostgresRepository) Update(ctx context.Context, tx *models.Transaction) error {
	if !isUUID(tx.ID) {
		return common.ErrorNotFound
	}

	query := `
		UPDATE transactions
		SET item_name = $3, amount = $4, category = $5, date = $6
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, tx.ID, tx.UserID, tx.ItemName, tx.Amount, tx.Category, tx.Date)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	if !isUUID(id) {
		return nil
	}

	query := `
		DELETE FROM transactions
		WHERE id = $1 AND user_id = $2
	`
	if _, err := r.db.ExecContext(ctx, query, id, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select transactions: %w", err)
	}
	defer rows.Close()

	var result []*models.Transaction
	for rows.Next() {
		item, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s scanner) (*models.Transaction, error) {
	var item models.Transaction
	if err := s.Scan(&item.ID, &item.UserID, &item.ItemName, &item.Amount, &item.Category, &item.Date, &item.CreatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
