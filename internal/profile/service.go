// Package profile implements the profile editor: reading a user's profile
// with its derived statistics, adding funds, saving edits, recording trades
// and exporting the trade history.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/atharvakonge/tradedesk/internal/db"
	"github.com/atharvakonge/tradedesk/internal/models"
	"github.com/atharvakonge/tradedesk/internal/stats"
)

var (
	// ErrInvalidAmount rejects non-numeric or non-positive fund amounts.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrProfileNotFound is returned for unknown usernames.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrProfileExists is returned when creating a taken username.
	ErrProfileExists = errors.New("profile already exists")
	// ErrInvalidUsername rejects blank usernames.
	ErrInvalidUsername = errors.New("invalid username")
)

// ExportFilename is the suggested download name for ExportHistory.
const ExportFilename = "trade_history.json"

// View is a profile together with the statistics derived from it.
type View struct {
	Profile *models.Profile `json:"profile"`
	Stats   stats.Stats     `json:"stats"`
}

// FundsResult reports a successful top-up.
type FundsResult struct {
	Added   float64 `json:"added"`
	Balance float64 `json:"balance"`
	Message string  `json:"message"`
}

// Service ties the store and the mutation processor together.
type Service struct {
	logger    *zap.Logger
	store     db.Store
	processor *Processor
}

// NewService creates a profile service. The processor must be started by
// the caller.
func NewService(logger *zap.Logger, store db.Store, processor *Processor) *Service {
	return &Service{logger: logger, store: store, processor: processor}
}

// Create opens a new profile with a zero balance and empty history.
func (s *Service) Create(ctx context.Context, username, displayName string) (*models.Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrInvalidUsername
	}
	if displayName == "" {
		displayName = username
	}
	p := &models.Profile{
		ID:           uuid.NewString(),
		Username:     username,
		DisplayName:  displayName,
		TradeHistory: []models.TradeRecord{},
	}
	if err := s.store.CreateProfile(ctx, p); err != nil {
		return nil, translate(err)
	}
	s.logger.Info("Profile created", zap.String("user", username), zap.String("id", p.ID))
	return p, nil
}

// Get loads a profile and derives its statistics.
func (s *Service) Get(ctx context.Context, username string) (*View, error) {
	p, err := s.store.GetProfile(ctx, username)
	if err != nil {
		return nil, translate(err)
	}
	return &View{Profile: p, Stats: stats.Derive(p.TradeHistory)}, nil
}

// Stats derives statistics for a user's current history.
func (s *Service) Stats(ctx context.Context, username string) (stats.Stats, error) {
	v, err := s.Get(ctx, username)
	if err != nil {
		return stats.Stats{}, err
	}
	return v.Stats, nil
}

// ParseAmount parses user-typed amount text as a plain decimal number
// (optionally with an exponent). Anything else, or a value not greater than
// zero, is ErrInvalidAmount.
func ParseAmount(text string) (float64, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil || !amount.IsPositive() {
		return 0, ErrInvalidAmount
	}
	return amount.InexactFloat64(), nil
}

// AddFunds adds amountText to the user's balance. Invalid input leaves the
// profile untouched.
func (s *Service) AddFunds(ctx context.Context, username, amountText string) (FundsResult, error) {
	amount, err := ParseAmount(amountText)
	if err != nil {
		return FundsResult{}, err
	}

	p, err := s.processor.Submit(ctx, username, "add_funds", func(p *models.Profile) error {
		p.Balance += amount
		return nil
	})
	if err != nil {
		return FundsResult{}, translate(err)
	}

	s.logger.Info("Funds added", zap.String("user", username), zap.Float64("amount", amount))
	return FundsResult{
		Added:   amount,
		Balance: p.Balance,
		Message: fmt.Sprintf("$%s added to your balance!", decimal.NewFromFloat(amount).String()),
	}, nil
}

// Save applies the editable fields.
func (s *Service) Save(ctx context.Context, username string, upd models.ProfileUpdate) (*models.Profile, error) {
	p, err := s.processor.Submit(ctx, username, "save", func(p *models.Profile) error {
		p.DisplayName = upd.DisplayName
		p.ProfilePic = upd.ProfilePic
		p.Settings.DarkMode = upd.DarkMode
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

// RecordTrade appends a trade to the user's history.
func (s *Service) RecordTrade(ctx context.Context, username string, trade models.TradeRecord) (*View, error) {
	p, err := s.processor.Submit(ctx, username, "record_trade", func(p *models.Profile) error {
		p.TradeHistory = append(p.TradeHistory, trade)
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return &View{Profile: p, Stats: stats.Derive(p.TradeHistory)}, nil
}

// Delete removes the profile and its history.
func (s *Service) Delete(ctx context.Context, username string) error {
	if err := s.processor.Remove(ctx, username); err != nil {
		return translate(err)
	}
	s.logger.Info("Profile deleted", zap.String("user", username))
	return nil
}

// ExportHistory renders the trade history as a pretty-printed JSON array
// (two-space indent). An empty history exports as [].
func (s *Service) ExportHistory(ctx context.Context, username string) ([]byte, error) {
	p, err := s.store.GetProfile(ctx, username)
	if err != nil {
		return nil, translate(err)
	}
	return EncodeHistory(p.TradeHistory)
}

// EncodeHistory is the export format on its own.
func EncodeHistory(trades []models.TradeRecord) ([]byte, error) {
	if trades == nil {
		trades = []models.TradeRecord{}
	}
	return json.MarshalIndent(trades, "", "  ")
}

// DecodeHistory parses an exported document.
func DecodeHistory(data []byte) ([]models.TradeRecord, error) {
	var trades []models.TradeRecord
	if err := json.Unmarshal(data, &trades); err != nil {
		return nil, fmt.Errorf("decode trade history: %w", err)
	}
	return trades, nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return ErrProfileNotFound
	case errors.Is(err, db.ErrDuplicate):
		return ErrProfileExists
	default:
		return err
	}
}
