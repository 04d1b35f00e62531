package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewMover_Rounding(t *testing.T) {
	m := NewMover("INFY", 3.249, 15.4567)
	assert.Equal(t, 3.2, m.Change)
	assert.Equal(t, 15.46, m.Price)
	assert.Equal(t, "+3.2%", m.ChangeLabel)
	assert.Equal(t, VolatilityMedium, m.Volatility)

	m = NewMover("INFY", -0.04, 15)
	assert.Equal(t, 0.0, m.Change)
	assert.Equal(t, "0.0%", m.ChangeLabel)
}

func TestChangeLabel(t *testing.T) {
	assert.Equal(t, "+7.0%", ChangeLabel(7))
	assert.Equal(t, "-6.5%", ChangeLabel(-6.5))
	assert.Equal(t, "0.0%", ChangeLabel(0))
}

func TestVolatility(t *testing.T) {
	assert.Equal(t, VolatilityLow, Volatility(1.9))
	assert.Equal(t, VolatilityMedium, Volatility(-2))
	assert.Equal(t, VolatilityMedium, Volatility(4.9))
	assert.Equal(t, VolatilityHigh, Volatility(-5))
	assert.Equal(t, VolatilityHigh, Volatility(7))
}

func TestPartition(t *testing.T) {
	movers := []Mover{
		NewMover("A", -1.5, 10),
		NewMover("B", 0, 10),
		NewMover("C", 4.2, 10),
		NewMover("D", -6.1, 10),
	}
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	snap := Partition(movers, at)

	names := func(ms []Mover) []string {
		out := []string{}
		for _, m := range ms {
			out = append(out, m.Name)
		}
		return out
	}
	assert.Equal(t, []string{"C", "B", "A", "D"}, names(snap.Movers))
	assert.Equal(t, []string{"C", "B"}, names(snap.Gainers))
	assert.Equal(t, []string{"A", "D"}, names(snap.Losers))
	assert.Equal(t, at, snap.GeneratedAt)
	// input order untouched
	assert.Equal(t, "A", movers[0].Name)
}

func TestSortByChange_StableTies(t *testing.T) {
	movers := []Mover{NewMover("X", 1, 1), NewMover("Y", 1, 1), NewMover("Z", 2, 1)}
	sorted := SortByChange(movers)
	assert.Equal(t, "Z", sorted[0].Name)
	assert.Equal(t, "X", sorted[1].Name)
	assert.Equal(t, "Y", sorted[2].Name)
}
