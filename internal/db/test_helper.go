package db

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/atharvakonge/tradedesk/internal/models"
)

// SetupTestStore returns a fresh in-memory sqlite store closed at test end.
func SetupTestStore(t *testing.T) Store {
	t.Helper()
	store, err := NewSQLiteStore("file::memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// SetupPostgresStore connects to TEST_DATABASE_URL, skipping the test when it
// is not set.
func SetupPostgresStore(t *testing.T) Store {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	store, err := NewPostgresStore(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// CreateTestProfile creates a profile with a unique username derived from
// username and returns it.
func CreateTestProfile(t *testing.T, store Store, username string, balance float64, trades ...models.TradeRecord) *models.Profile {
	t.Helper()

	// Make username unique by adding timestamp
	p := &models.Profile{
		ID:           uuid.NewString(),
		Username:     fmt.Sprintf("%s_%d", username, time.Now().UnixNano()),
		DisplayName:  username,
		Balance:      balance,
		TradeHistory: trades,
	}
	if p.TradeHistory == nil {
		p.TradeHistory = []models.TradeRecord{}
	}
	if err := store.CreateProfile(context.Background(), p); err != nil {
		t.Fatalf("Failed to create test profile: %v", err)
	}
	return p
}
