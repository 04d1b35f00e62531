// Package stats derives the profile statistics shown alongside a user's
// trade history. Nothing here is stored: every value is recomputed from the
// trade list on each call.
package stats

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/atharvakonge/tradedesk/internal/models"
)

// Skill tiers
const (
	TierBeginner     = "Beginner"
	TierIntermediate = "Intermediate"
	TierExpert       = "Expert"
)

// Badge labels
const (
	BadgeActiveTrader = "Active Trader"
	BadgeHighAccuracy = "High Accuracy"
	BadgeProfitMaster = "Profit Master"
)

// Gauge maxima used by the progress bars.
const (
	tradesGaugeMax  = 100
	winRateGaugeMax = 100
	profitGaugeMax  = 2000
)

// Progress holds gauge fill percentages, each clamped to [0,100].
type Progress struct {
	Trades  float64 `json:"trades"`
	WinRate float64 `json:"win_rate"`
	Profit  float64 `json:"profit"`
}

// Stats is the derived view over a trade history.
type Stats struct {
	TotalTrades    int                  `json:"total_trades"`
	Wins           int                  `json:"wins"`
	WinRate        float64              `json:"win_rate"`
	TotalProfit    float64              `json:"total_profit"`
	PortfolioValue float64              `json:"portfolio_value"`
	SkillLevel     string               `json:"skill_level"`
	Badges         []string             `json:"badges"`
	Progress       Progress             `json:"progress"`
	RecentTrades   []models.TradeRecord `json:"recent_trades"`
}

// Derive computes every statistic for the given trades.
func Derive(trades []models.TradeRecord) Stats {
	total := len(trades)
	winRate := WinRate(trades)
	profit := TotalProfit(trades)

	return Stats{
		TotalTrades:    total,
		Wins:           Wins(trades),
		WinRate:        winRate,
		TotalProfit:    profit,
		PortfolioValue: PortfolioValue(trades),
		SkillLevel:     SkillTier(total),
		Badges:         Badges(total, winRate, profit),
		Progress: Progress{
			Trades:  gauge(float64(total), tradesGaugeMax),
			WinRate: gauge(winRate, winRateGaugeMax),
			Profit:  gauge(profit, profitGaugeMax),
		},
		RecentTrades: Recent(trades, 3),
	}
}

// Wins counts trades with a strictly positive profit.
func Wins(trades []models.TradeRecord) int {
	wins := 0
	for _, t := range trades {
		if t.Profit > 0 {
			wins++
		}
	}
	return wins
}

// WinRate returns wins/total as a percentage rounded to one decimal, or 0
// for an empty history.
func WinRate(trades []models.TradeRecord) float64 {
	if len(trades) == 0 {
		return 0
	}
	pct := decimal.NewFromInt(int64(Wins(trades))).
		Div(decimal.NewFromInt(int64(len(trades)))).
		Mul(decimal.NewFromInt(100)).
		Round(1)
	return pct.InexactFloat64()
}

// TotalProfit is the plain sum of every profit, losses included.
func TotalProfit(trades []models.TradeRecord) float64 {
	sum := 0.0
	for _, t := range trades {
		sum += t.Profit
	}
	return sum
}

// PortfolioValue is the sum of price × shares over all trades.
func PortfolioValue(trades []models.TradeRecord) float64 {
	sum := 0.0
	for _, t := range trades {
		sum += t.Price * float64(t.Shares)
	}
	return sum
}

// SkillTier classifies a trade count.
func SkillTier(count int) string {
	switch {
	case count > 50:
		return TierExpert
	case count > 20:
		return TierIntermediate
	default:
		return TierBeginner
	}
}

// Badges evaluates each badge independently. The result is never nil so it
// encodes as an empty JSON array.
func Badges(count int, winRate, totalProfit float64) []string {
	badges := []string{}
	if count >= 10 {
		badges = append(badges, BadgeActiveTrader)
	}
	if winRate >= 70 {
		badges = append(badges, BadgeHighAccuracy)
	}
	if totalProfit >= 1000 {
		badges = append(badges, BadgeProfitMaster)
	}
	return badges
}

// Recent returns up to n trades, newest first.
func Recent(trades []models.TradeRecord, n int) []models.TradeRecord {
	if n < 0 {
		n = 0
	}
	if n > len(trades) {
		n = len(trades)
	}
	out := make([]models.TradeRecord, 0, n)
	for i := len(trades) - 1; i >= len(trades)-n; i-- {
		out = append(out, trades[i])
	}
	return out
}

func gauge(value, limit float64) float64 {
	return math.Max(0, math.Min(value/limit*100, 100))
}
