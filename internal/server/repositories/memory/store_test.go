package memory

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/budgettracker/internal/common"
	"github.com/dmitrijs2005/budgettracker/internal/server/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Users()

	_, err := repo.Create(ctx, &models.User{UserName: "bob", PasswordHash: []byte("h")})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{UserName: "bob"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
	assert.Equal(t, 1, repo.Count())

	_, err = repo.GetUserByLogin(ctx, "Bob")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestTransactions_OwnershipAndRange(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Transactions()

	mk := func(user, date string) *models.Transaction {
		tx, err := repo.Create(ctx, &models.Transaction{
			UserID: user, ItemName: "x", Category: "c", Date: date, Amount: decimal.NewFromInt(1),
		})
		require.NoError(t, err)
		return tx
	}
	a := mk("u1", "2023-03-31")
	mk("u1", "2023-04-01")
	b := mk("u1", "2023-03-01")
	foreign := mk("u2", "2023-03-10")

	got, err := repo.ListByUserInRange(ctx, "u1", "2023-03-01", "2023-04-01")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].ID)
	assert.Equal(t, a.ID, got[1].ID)

	_, err = repo.Get(ctx, "u1", foreign.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	err = repo.Update(ctx, &models.Transaction{ID: foreign.ID, UserID: "u1", ItemName: "stolen"})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, repo.Delete(ctx, "u1", foreign.ID))
	still, err := repo.Get(ctx, "u2", foreign.ID)
	require.NoError(t, err)
	assert.Equal(t, "x", still.ItemName)
}

func TestRefreshTokens_DeleteExpired(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().RefreshTokens()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, "u1", "old", now.Add(-time.Minute)))
	require.NoError(t, repo.Create(ctx, "u1", "new", now.Add(time.Minute)))

	n, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.Find(ctx, "old")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	tok, err := repo.Find(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, "u1", tok.UserID)
}

func TestRefreshTokens_ConsumeOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().RefreshTokens()

	require.NoError(t, repo.Create(ctx, "u1", "tok", time.Now().Add(time.Hour)))

	ok, err := repo.Consume(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Consume(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, ok)
}
