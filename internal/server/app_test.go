package server

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/budgettracker/internal/logging"
	"github.com/dmitrijs2005/budgettracker/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func memoryConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDSN = config.MemoryDSN
	c.HTTPAddr = "127.0.0.1:0"
	c.BcryptCost = bcrypt.MinCost
	c.TokenPurgeInterval = 10 * time.Millisecond
	c.ShutdownTimeout = time.Second
	return c
}

func TestOpenStore_Memory(t *testing.T) {
	db, m, err := OpenStore(context.Background(), memoryConfig())
	require.NoError(t, err)
	assert.Nil(t, db)
	assert.NotNil(t, m)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), memoryConfig(), logging.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestApp_PurgeOnce(t *testing.T) {
	ctx := context.Background()
	c := memoryConfig()
	c.RefreshTokenValidityDuration = time.Millisecond

	app, err := NewApp(ctx, c, logging.Nop())
	require.NoError(t, err)

	_, err = app.identity.Register(ctx, "alice", "pw")
	require.NoError(t, err)
	pair, err := app.identity.Login(ctx, "alice", "pw")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	app.purgeOnce(ctx)

	_, err = app.identity.RefreshToken(ctx, pair.RefreshToken)
	assert.Error(t, err)
	assert.NoError(t, app.Close())
}
