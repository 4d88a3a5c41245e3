// Package memory keeps users, transactions and refresh tokens in process
// memory. It backs local runs without PostgreSQL and service tests.
package memory

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/budgettracker/internal/server/models"
)

// Store holds every collection behind one lock. Records are copied on the
// way in and out so callers never alias stored state.
type Store struct {
	mu           sync.RWMutex
	users        map[string]models.User
	transactions map[string]models.Transaction
	tokens       map[string]models.RefreshToken

	// txMu serializes units of work started through Tx.
	txMu sync.Mutex

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:        make(map[string]models.User),
		transactions: make(map[string]models.Transaction),
		tokens:       make(map[string]models.RefreshToken),
		now:          time.Now,
	}
}

// Tx runs fn while holding the unit-of-work lock. There is no rollback.
func (s *Store) Tx(fn func() error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn()
}

func (s *Store) Users() *UsersRepository {
	return &UsersRepository{s: s}
}

func (s *Store) Transactions() *TransactionsRepository {
	return &TransactionsRepository{s: s}
}

func (s *Store) RefreshTokens() *RefreshTokensRepository {
	return &RefreshTokensRepository{s: s}
}
