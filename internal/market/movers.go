package market

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Instrument is a named F&O underlying with its base price
type Instrument struct {
	Name      string  `json:"name"`
	BasePrice float64 `json:"base_price"`
}

// DefaultInstruments is the fixed demo board.
var DefaultInstruments = []Instrument{
	{Name: "RELIANCE", BasePrice: 238.6},
	{Name: "TATASTEEL", BasePrice: 145.4},
	{Name: "INFY", BasePrice: 15.45},
	{Name: "HDFCBANK", BasePrice: 156.4},
	{Name: "ICICIBANK", BasePrice: 780.9},
}

// Volatility buckets
const (
	VolatilityLow    = "Low"
	VolatilityMedium = "Medium"
	VolatilityHigh   = "High"
)

// Mover is an instrument with its computed change for one refresh.
type Mover struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Change      float64 `json:"change"`       // percent, one decimal
	ChangeLabel string  `json:"change_label"` // "+3.2%", "-1.0%", "0.0%"
	Volatility  string  `json:"volatility"`
}

// Snapshot is the result of one successful refresh.
type Snapshot struct {
	Gainers     []Mover   `json:"gainers"`
	Losers      []Mover   `json:"losers"`
	Movers      []Mover   `json:"movers"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewMover builds a mover from a raw change and price, rounding both the way
// the board displays them.
func NewMover(name string, change, price float64) Mover {
	change = round(change, 1)
	if change == 0 {
		change = 0 // drop negative zero
	}
	return Mover{
		Name:        name,
		Price:       round(price, 2),
		Change:      change,
		ChangeLabel: ChangeLabel(change),
		Volatility:  Volatility(change),
	}
}

// ChangeLabel formats a change with an explicit plus sign for gains.
func ChangeLabel(change float64) string {
	if change > 0 {
		return fmt.Sprintf("+%.1f%%", change)
	}
	return fmt.Sprintf("%.1f%%", change)
}

// Volatility buckets the magnitude of a change.
func Volatility(change float64) string {
	switch abs := math.Abs(change); {
	case abs >= 5:
		return VolatilityHigh
	case abs >= 2:
		return VolatilityMedium
	default:
		return VolatilityLow
	}
}

// Partition splits movers into gainers (change >= 0) and losers, and sorts
// all three lists by change descending. The input slice is not modified.
func Partition(movers []Mover, at time.Time) Snapshot {
	snap := Snapshot{
		Gainers:     []Mover{},
		Losers:      []Mover{},
		Movers:      SortByChange(movers),
		GeneratedAt: at,
	}
	for _, m := range snap.Movers {
		if m.Change >= 0 {
			snap.Gainers = append(snap.Gainers, m)
		} else {
			snap.Losers = append(snap.Losers, m)
		}
	}
	return snap
}

// SortByChange returns a copy ordered by change descending, ties kept in
// input order.
func SortByChange(movers []Mover) []Mover {
	out := make([]Mover, len(movers))
	copy(out, movers)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Change > out[j].Change
	})
	return out
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
