package stats

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atharvakonge/tradedesk/internal/models"
)

// makeTrades builds n trades where the first `wins` are profitable.
func makeTrades(n, wins int, profit float64) []models.TradeRecord {
	trades := make([]models.TradeRecord, n)
	for i := range trades {
		p := -profit
		if i < wins {
			p = profit
		}
		trades[i] = models.TradeRecord{Symbol: fmt.Sprintf("SYM%d", i), Shares: 1, Price: 10, Profit: p}
	}
	return trades
}

func TestDerive_Empty(t *testing.T) {
	s := Derive(nil)

	assert.Equal(t, 0, s.TotalTrades)
	assert.Zero(t, s.WinRate)
	assert.Zero(t, s.TotalProfit)
	assert.Zero(t, s.PortfolioValue)
	assert.Equal(t, TierBeginner, s.SkillLevel)
	assert.Empty(t, s.Badges)
	assert.NotNil(t, s.Badges)
	assert.Empty(t, s.RecentTrades)
}

func TestDerive_Mixed(t *testing.T) {
	trades := []models.TradeRecord{
		{Symbol: "AAPL", Shares: 10, Price: 150, Profit: 120.5},
		{Symbol: "TSLA", Shares: 2, Price: 250, Profit: -80},
		{Symbol: "MSFT", Shares: 5, Price: 380, Profit: 0},
	}

	s := Derive(trades)

	assert.Equal(t, 3, s.TotalTrades)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 33.3, s.WinRate)
	assert.Equal(t, 40.5, s.TotalProfit)
	assert.Equal(t, 1500.0+500.0+1900.0, s.PortfolioValue)
	assert.Equal(t, []models.TradeRecord{trades[2], trades[1], trades[0]}, s.RecentTrades)
}

func TestWinRate_Rounding(t *testing.T) {
	assert.Equal(t, 66.7, WinRate(makeTrades(3, 2, 1)))
	assert.Equal(t, 100.0, WinRate(makeTrades(4, 4, 1)))
	assert.Equal(t, 0.0, WinRate(makeTrades(4, 0, 1)))
	assert.Equal(t, 14.3, WinRate(makeTrades(7, 1, 1)))
}

func TestWinRate_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		n := rng.Intn(80)
		trades := make([]models.TradeRecord, n)
		for j := range trades {
			trades[j].Profit = rng.Float64()*200 - 100
		}
		wr := WinRate(trades)
		assert.GreaterOrEqual(t, wr, 0.0)
		assert.LessOrEqual(t, wr, 100.0)
	}
}

func TestTotalProfit_IncludesLosses(t *testing.T) {
	trades := []models.TradeRecord{{Profit: 500}, {Profit: -750.25}, {Profit: 10}}
	assert.Equal(t, 500-750.25+10, TotalProfit(trades))
}

func TestPortfolioValue_MissingFieldsAreZero(t *testing.T) {
	trades := []models.TradeRecord{{Symbol: "INFY", Price: 15.45}, {Symbol: "TCS", Shares: 3}}
	assert.Zero(t, PortfolioValue(trades))
}

func TestSkillTier(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, TierBeginner},
		{20, TierBeginner},
		{21, TierIntermediate},
		{50, TierIntermediate},
		{51, TierExpert},
		{500, TierExpert},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SkillTier(tt.count), "count=%d", tt.count)
	}
}

func TestBadges(t *testing.T) {
	t.Run("None", func(t *testing.T) {
		assert.Empty(t, Badges(9, 69.9, 999.99))
	})

	t.Run("ActiveTraderOnly", func(t *testing.T) {
		assert.Equal(t, []string{BadgeActiveTrader}, Badges(10, 10, -5000))
	})

	t.Run("AccuracyWithoutVolume", func(t *testing.T) {
		assert.Equal(t, []string{BadgeHighAccuracy}, Badges(1, 100, 5))
	})

	t.Run("All", func(t *testing.T) {
		assert.Equal(t,
			[]string{BadgeActiveTrader, BadgeHighAccuracy, BadgeProfitMaster},
			Badges(10, 70, 1000))
	})

	t.Run("DerivedFromTrades", func(t *testing.T) {
		s := Derive(makeTrades(12, 9, 200))
		// 9 wins of 12 = 75%, profit 9*200 - 3*200 = 1200
		assert.Equal(t, 75.0, s.WinRate)
		assert.ElementsMatch(t, []string{BadgeActiveTrader, BadgeHighAccuracy, BadgeProfitMaster}, s.Badges)
	})
}

func TestProgress_Clamped(t *testing.T) {
	s := Derive(makeTrades(150, 0, 100))
	assert.Equal(t, 100.0, s.Progress.Trades)
	assert.Equal(t, 0.0, s.Progress.WinRate)
	assert.Equal(t, 0.0, s.Progress.Profit)

	s = Derive([]models.TradeRecord{{Profit: 500}})
	assert.Equal(t, 1.0, s.Progress.Trades)
	assert.Equal(t, 100.0, s.Progress.WinRate)
	assert.Equal(t, 25.0, s.Progress.Profit)
}

func TestRecent(t *testing.T) {
	trades := makeTrades(5, 0, 1)
	got := Recent(trades, 3)
	assert.Equal(t, []string{"SYM4", "SYM3", "SYM2"}, []string{got[0].Symbol, got[1].Symbol, got[2].Symbol})
	assert.Len(t, Recent(trades[:2], 3), 2)
}

func TestRecent_NonPositiveCount(t *testing.T) {
	trades := makeTrades(5, 0, 1)
	assert.NotPanics(t, func() { Recent(trades, -1) })
	assert.Empty(t, Recent(trades, -1))
	assert.Empty(t, Recent(trades, 0))
}
