package repomanager

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/budgettracker/internal/dbx"
	"github.com/dmitrijs2005/budgettracker/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepositoryManager_SharesStore(t *testing.T) {
	ctx := context.Background()
	m := NewInMemoryRepositoryManager()
	var _ RepositoryManager = m

	require.NoError(t, m.RunMigrations(ctx, nil))

	u, err := m.Users(nil).Create(ctx, &models.User{UserName: "alice"})
	require.NoError(t, err)

	got, err := m.Users(nil).GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.UserName)
	assert.Equal(t, 1, m.Store().Users().Count())
}

func TestInMemoryRepositoryManager_WithTx(t *testing.T) {
	m := NewInMemoryRepositoryManager()
	boom := errors.New("boom")

	err := m.WithTx(context.Background(), nil, func(ctx context.Context, tx dbx.DBTX) error {
		assert.Nil(t, tx)
		return boom
	})
	assert.ErrorIs(t, err, boom)
}
