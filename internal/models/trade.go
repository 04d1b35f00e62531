package models

import "time"

// TradeRecord is one completed buy/sell event in a user's history
type TradeRecord struct {
	Symbol string  `json:"symbol"`
	Shares int     `json:"shares"`
	Price  float64 `json:"price"`
	Profit float64 `json:"profit"`
}

// Settings holds per-user display preferences
type Settings struct {
	DarkMode bool `json:"dark_mode"`
}

// Profile represents a user and everything the profile editor shows
type Profile struct {
	ID           string        `json:"id"`
	Username     string        `json:"username"`
	DisplayName  string        `json:"display_name"`
	Balance      float64       `json:"balance"`
	ProfilePic   string        `json:"profile_pic,omitempty"`
	Settings     Settings      `json:"settings"`
	TradeHistory []TradeRecord `json:"trade_history"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// CreateProfileRequest - what client sends to open a profile
type CreateProfileRequest struct {
	Username    string `json:"username" binding:"required"`
	DisplayName string `json:"display_name"`
}

// ProfileUpdate - editable fields of a profile
type ProfileUpdate struct {
	DisplayName string `json:"display_name"`
	ProfilePic  string `json:"profile_pic"`
	DarkMode    bool   `json:"dark_mode"`
}

// FundsRequest carries the raw amount text as typed by the user.
// Parsing happens server-side so invalid input can be rejected with the
// same message regardless of client.
type FundsRequest struct {
	Amount string `json:"amount"`
}

// TradeRequest - a trade to append to the history
type TradeRequest struct {
	Symbol string  `json:"symbol" binding:"required"`
	Shares int     `json:"shares" binding:"min=0"`
	Price  float64 `json:"price" binding:"min=0"`
	Profit float64 `json:"profit"`
}

// Record converts the request into a trade record
func (r TradeRequest) Record() TradeRecord {
	return TradeRecord{Symbol: r.Symbol, Shares: r.Shares, Price: r.Price, Profit: r.Profit}
}
