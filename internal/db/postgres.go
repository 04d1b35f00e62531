package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq" // PostgreSQL driver

	"github.com/atharvakonge/tradedesk/internal/models"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS profiles (
    id           TEXT PRIMARY KEY,
    username     TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL DEFAULT '',
    balance      DOUBLE PRECISION NOT NULL DEFAULT 0,
    profile_pic  TEXT NOT NULL DEFAULT '',
    dark_mode    BOOLEAN NOT NULL DEFAULT FALSE,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS trades (
    id         SERIAL PRIMARY KEY,
    profile_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
    seq        INTEGER NOT NULL,
    symbol     TEXT NOT NULL,
    shares     INTEGER NOT NULL DEFAULT 0,
    price      DOUBLE PRECISION NOT NULL DEFAULT 0,
    profit     DOUBLE PRECISION NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_trades_profile ON trades (profile_id, seq);
`

// uniqueViolation is the postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// PostgresStore is a Store backed by database/sql and lib/pq.
type PostgresStore struct {
	db *sql.DB
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore connects using a lib/pq connection string and ensures the
// schema exists.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if _, err := db.Exec(postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating schema: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// CreateProfile inserts p and its trades.
func (s *PostgresStore) CreateProfile(ctx context.Context, p *models.Profile) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	defer tx.Rollback() // Rollback if we don't commit

	err = tx.QueryRowContext(ctx, `
        INSERT INTO profiles (id, username, display_name, balance, profile_pic, dark_mode)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at
    `, p.ID, p.Username, p.DisplayName, p.Balance, p.ProfilePic, p.Settings.DarkMode).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}

	if err := insertTrades(ctx, tx, p.ID, p.TradeHistory); err != nil {
		return err
	}
	return tx.Commit()
}

// GetProfile loads a profile with its ordered trade history.
func (s *PostgresStore) GetProfile(ctx context.Context, username string) (*models.Profile, error) {
	p := &models.Profile{TradeHistory: []models.TradeRecord{}}
	err := s.db.QueryRowContext(ctx, `
        SELECT id, username, display_name, balance, profile_pic, dark_mode, created_at, updated_at
        FROM profiles
        WHERE username = $1
    `, username).Scan(&p.ID, &p.Username, &p.DisplayName, &p.Balance, &p.ProfilePic,
		&p.Settings.DarkMode, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT symbol, shares, price, profit
        FROM trades
        WHERE profile_id = $1
        ORDER BY seq
    `, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trades: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.TradeRecord
		if err := rows.Scan(&t.Symbol, &t.Shares, &t.Price, &t.Profit); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		p.TradeHistory = append(p.TradeHistory, t)
	}
	return p, rows.Err()
}

// SaveProfile updates the profile row and rewrites its trades (all or nothing).
func (s *PostgresStore) SaveProfile(ctx context.Context, p *models.Profile) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
        UPDATE profiles
        SET display_name = $1, balance = $2, profile_pic = $3, dark_mode = $4, updated_at = NOW()
        WHERE id = $5
    `, p.DisplayName, p.Balance, p.ProfilePic, p.Settings.DarkMode, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM trades WHERE profile_id = $1", p.ID); err != nil {
		return fmt.Errorf("failed to clear trades: %w", err)
	}
	if err := insertTrades(ctx, tx, p.ID, p.TradeHistory); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}
	return nil
}

// DeleteProfile removes the profile; trades go with it via ON DELETE CASCADE.
func (s *PostgresStore) DeleteProfile(ctx context.Context, username string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM profiles WHERE username = $1", username)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func insertTrades(ctx context.Context, tx *sql.Tx, profileID string, trades []models.TradeRecord) error {
	for i, t := range trades {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO trades (profile_id, seq, symbol, shares, price, profit)
            VALUES ($1, $2, $3, $4, $5, $6)
        `, profileID, i, t.Symbol, t.Shares, t.Price, t.Profit)
		if err != nil {
			return fmt.Errorf("failed to record trade: %w", err)
		}
	}
	return nil
}
