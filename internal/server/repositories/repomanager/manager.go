// Package repomanager vends collection repositories bound to a database
// handle and owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/budgettracker/internal/dbx"
	"github.com/dmitrijs2005/budgettracker/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/budgettracker/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/budgettracker/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error

	// WithTx runs fn inside a single unit of work. Repositories obtained from
	// the tx handle passed to fn share that unit of work.
	WithTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error

	Users(db dbx.DBTX) users.Repository
	Transactions(db dbx.DBTX) transactions.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
