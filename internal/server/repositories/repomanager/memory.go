package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/budgettracker/internal/dbx"
	"github.com/dmitrijs2005/budgettracker/internal/server/repositories/memory"
	"github.com/dmitrijs2005/budgettracker/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/budgettracker/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/budgettracker/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves every repository from one memory.Store.
// The DBTX handles passed to it are ignored and may be nil.
type InMemoryRepositoryManager struct {
	store *memory.Store
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{store: memory.NewStore()}
}

// Store exposes the backing store.
func (m *InMemoryRepositoryManager) Store() *memory.Store {
	return m.store
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) WithTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	return m.store.Tx(func() error { return fn(ctx, nil) })
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.store.Users()
}

func (m *InMemoryRepositoryManager) Transactions(dbx.DBTX) transactions.Repository {
	return m.store.Transactions()
}

func (m *InMemoryRepositoryManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository {
	return m.store.RefreshTokens()
}
