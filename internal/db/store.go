package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/atharvakonge/tradedesk/internal/config"
	"github.com/atharvakonge/tradedesk/internal/models"
)

var (
	// ErrNotFound is returned when no profile has the given username.
	ErrNotFound = errors.New("profile not found")
	// ErrDuplicate is returned when creating a profile whose username is taken.
	ErrDuplicate = errors.New("profile already exists")
)

// Store persists profiles together with their trade history.
type Store interface {
	CreateProfile(ctx context.Context, p *models.Profile) error
	GetProfile(ctx context.Context, username string) (*models.Profile, error)
	// SaveProfile overwrites the fields of the profile with p.ID and replaces
	// its trade history with p.TradeHistory, preserving order.
	SaveProfile(ctx context.Context, p *models.Profile) error
	DeleteProfile(ctx context.Context, username string) error
	Close() error
}

// Open connects the store selected by cfg.Driver.
func Open(cfg config.Database) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return NewSQLiteStore(cfg.DSN)
	case "postgres":
		return NewPostgresStore(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
