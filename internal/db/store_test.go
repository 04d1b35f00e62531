package db

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharvakonge/tradedesk/internal/config"
	"github.com/atharvakonge/tradedesk/internal/models"
)

var sampleTrades = []models.TradeRecord{
	{Symbol: "AAPL", Shares: 10, Price: 150.25, Profit: 42.1},
	{Symbol: "TSLA", Shares: 3, Price: 250, Profit: -17.35},
	{Symbol: "INFY", Shares: 7, Price: 15.45, Profit: 0},
}

// exerciseStore runs the shared contract against any Store.
func exerciseStore(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("CreateAndGet", func(t *testing.T) {
		p := CreateTestProfile(t, store, "alice", 500, sampleTrades...)

		got, err := store.GetProfile(ctx, p.Username)
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
		assert.Equal(t, 500.0, got.Balance)
		assert.Equal(t, sampleTrades, got.TradeHistory)
	})

	t.Run("Duplicate", func(t *testing.T) {
		p := CreateTestProfile(t, store, "bob", 0)
		dup := &models.Profile{ID: uuid.NewString(), Username: p.Username}
		assert.ErrorIs(t, store.CreateProfile(ctx, dup), ErrDuplicate)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := store.GetProfile(ctx, "nobody")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, store.DeleteProfile(ctx, "nobody"), ErrNotFound)
		assert.ErrorIs(t, store.SaveProfile(ctx, &models.Profile{Username: "nobody"}), ErrNotFound)
	})

	t.Run("SaveReplacesHistory", func(t *testing.T) {
		p := CreateTestProfile(t, store, "carol", 10, sampleTrades...)

		p.DisplayName = "Carol C."
		p.Balance = 99.5
		p.Settings.DarkMode = true
		p.TradeHistory = []models.TradeRecord{sampleTrades[2], {Symbol: "MSFT", Shares: 1, Price: 380, Profit: 5}}
		require.NoError(t, store.SaveProfile(ctx, p))

		got, err := store.GetProfile(ctx, p.Username)
		require.NoError(t, err)
		assert.Equal(t, "Carol C.", got.DisplayName)
		assert.Equal(t, 99.5, got.Balance)
		assert.True(t, got.Settings.DarkMode)
		assert.Equal(t, p.TradeHistory, got.TradeHistory)
	})

	t.Run("SaveEmptyHistory", func(t *testing.T) {
		p := CreateTestProfile(t, store, "dave", 0, sampleTrades...)
		p.TradeHistory = []models.TradeRecord{}
		require.NoError(t, store.SaveProfile(ctx, p))

		got, err := store.GetProfile(ctx, p.Username)
		require.NoError(t, err)
		assert.Empty(t, got.TradeHistory)
		assert.NotNil(t, got.TradeHistory)
	})

	t.Run("SaveAfterRecreate", func(t *testing.T) {
		stale := CreateTestProfile(t, store, "frank", 10, sampleTrades...)
		require.NoError(t, store.DeleteProfile(ctx, stale.Username))

		fresh := &models.Profile{ID: uuid.NewString(), Username: stale.Username, DisplayName: "new", Balance: 1}
		require.NoError(t, store.CreateProfile(ctx, fresh))

		stale.Balance = 999
		stale.TradeHistory = sampleTrades[:1]
		assert.ErrorIs(t, store.SaveProfile(ctx, stale), ErrNotFound)

		got, err := store.GetProfile(ctx, fresh.Username)
		require.NoError(t, err)
		assert.Equal(t, fresh.ID, got.ID)
		assert.Equal(t, 1.0, got.Balance)
		assert.Empty(t, got.TradeHistory)
	})

	t.Run("Delete", func(t *testing.T) {
		p := CreateTestProfile(t, store, "erin", 0, sampleTrades...)
		require.NoError(t, store.DeleteProfile(ctx, p.Username))

		_, err := store.GetProfile(ctx, p.Username)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSQLiteStore(t *testing.T) {
	exerciseStore(t, SetupTestStore(t))
}

func TestPostgresStore(t *testing.T) {
	exerciseStore(t, SetupPostgresStore(t))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(config.Database{Driver: "mysql"})
	assert.Error(t, err)
}

func TestOpen_SQLite(t *testing.T) {
	store, err := Open(config.Database{Driver: "sqlite", DSN: "file::memory:"})
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}
