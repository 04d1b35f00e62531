package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/atharvakonge/tradedesk/internal/models"
)

// profileRow is the gorm mapping of a profile.
type profileRow struct {
	ID          string `gorm:"primaryKey"`
	Username    string `gorm:"uniqueIndex;not null"`
	DisplayName string
	Balance     float64 `gorm:"not null;default:0"`
	ProfilePic  string
	DarkMode    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Trades      []tradeRow `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
}

func (profileRow) TableName() string { return "profiles" }

// tradeRow is one entry in a profile's history. Seq keeps history order.
type tradeRow struct {
	ID        uint   `gorm:"primaryKey"`
	ProfileID string `gorm:"index;not null"`
	Seq       int    `gorm:"not null"`
	Symbol    string `gorm:"not null"`
	Shares    int
	Price     float64
	Profit    float64
}

func (tradeRow) TableName() string { return "trades" }

// SQLiteStore is a Store backed by gorm over sqlite.
type SQLiteStore struct {
	db *gorm.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) the sqlite database at dsn and migrates
// the schema. Use "file::memory:" for a throwaway database.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	// sqlite allows one writer; an in-memory database also lives on a
	// single connection.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&profileRow{}, &tradeRow{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// CreateProfile inserts p and its trades.
func (s *SQLiteStore) CreateProfile(ctx context.Context, p *models.Profile) error {
	row := toRow(p)
	err := s.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	p.CreatedAt, p.UpdatedAt = row.CreatedAt, row.UpdatedAt
	return nil
}

// GetProfile loads a profile with its ordered trade history.
func (s *SQLiteStore) GetProfile(ctx context.Context, username string) (*models.Profile, error) {
	var row profileRow
	err := s.db.WithContext(ctx).
		Preload("Trades", func(db *gorm.DB) *gorm.DB { return db.Order("seq asc") }).
		Where("username = ?", username).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return fromRow(row), nil
}

// SaveProfile updates the profile row matching p.ID and rewrites its trades
// in one transaction. A profile deleted since it was loaded is ErrNotFound.
func (s *SQLiteStore) SaveProfile(ctx context.Context, p *models.Profile) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&profileRow{}).
			Where("id = ?", p.ID).
			Updates(map[string]interface{}{
				"display_name": p.DisplayName,
				"balance":      p.Balance,
				"profile_pic":  p.ProfilePic,
				"dark_mode":    p.Settings.DarkMode,
				"updated_at":   time.Now(),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update profile: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := tx.Where("profile_id = ?", p.ID).Delete(&tradeRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear trades: %w", err)
		}
		trades := toTradeRows(p.ID, p.TradeHistory)
		if len(trades) > 0 {
			if err := tx.Create(&trades).Error; err != nil {
				return fmt.Errorf("failed to write trades: %w", err)
			}
		}
		return nil
	})
}

// DeleteProfile removes the profile and its trades.
func (s *SQLiteStore) DeleteProfile(ctx context.Context, username string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row profileRow
		err := tx.Where("username = ?", username).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to find profile: %w", err)
		}
		if err := tx.Where("profile_id = ?", row.ID).Delete(&tradeRow{}).Error; err != nil {
			return fmt.Errorf("failed to delete trades: %w", err)
		}
		if err := tx.Delete(&row).Error; err != nil {
			return fmt.Errorf("failed to delete profile: %w", err)
		}
		return nil
	})
}

// Close closes the underlying connection.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toRow(p *models.Profile) profileRow {
	return profileRow{
		ID:          p.ID,
		Username:    p.Username,
		DisplayName: p.DisplayName,
		Balance:     p.Balance,
		ProfilePic:  p.ProfilePic,
		DarkMode:    p.Settings.DarkMode,
		Trades:      toTradeRows(p.ID, p.TradeHistory),
	}
}

func toTradeRows(profileID string, trades []models.TradeRecord) []tradeRow {
	rows := make([]tradeRow, 0, len(trades))
	for i, t := range trades {
		rows = append(rows, tradeRow{
			ProfileID: profileID,
			Seq:       i,
			Symbol:    t.Symbol,
			Shares:    t.Shares,
			Price:     t.Price,
			Profit:    t.Profit,
		})
	}
	return rows
}

func fromRow(row profileRow) *models.Profile {
	p := &models.Profile{
		ID:           row.ID,
		Username:     row.Username,
		DisplayName:  row.DisplayName,
		Balance:      row.Balance,
		ProfilePic:   row.ProfilePic,
		Settings:     models.Settings{DarkMode: row.DarkMode},
		TradeHistory: make([]models.TradeRecord, 0, len(row.Trades)),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	for _, t := range row.Trades {
		p.TradeHistory = append(p.TradeHistory, models.TradeRecord{
			Symbol: t.Symbol,
			Shares: t.Shares,
			Price:  t.Price,
			Profit: t.Profit,
		})
	}
	return p
}
