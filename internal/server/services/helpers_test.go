package services

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/budgettracker/internal/logging"
	"github.com/dmitrijs2005/budgettracker/internal/server/config"
	"github.com/dmitrijs2005/budgettracker/internal/server/models"
	"github.com/dmitrijs2005/budgettracker/internal/server/repositories/repomanager"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		BcryptCost:                   bcrypt.MinCost,
		ExportURLValidityDuration:    15 * time.Minute,
	}
}

// fixedClock returns a clock that can be moved forward by the test.
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time          { return c.t }
func (c *fixedClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock(year int, month time.Month) *fixedClock {
	return &fixedClock{t: time.Date(year, month, 15, 12, 0, 0, 0, time.UTC)}
}

func input(item, category, amount, date string) models.TransactionInput {
	return models.TransactionInput{
		ItemName: item,
		Category: category,
		Amount:   decimal.RequireFromString(amount),
		Date:     date,
	}
}

func mustRegister(t *testing.T, s *IdentityService, username string) models.Principal {
	t.Helper()
	u, err := s.Register(t.Context(), username, "pw-"+username)
	require.NoError(t, err)
	return u.Principal()
}

func newMemoryManager() *repomanager.InMemoryRepositoryManager {
	return repomanager.NewInMemoryRepositoryManager()
}

func nopLogger() logging.Logger {
	return logging.Nop()
}
