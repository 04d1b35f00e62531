// Package market simulates the futures & options summary board: a fixed set
// of instruments whose price and percentage change are re-rolled on every
// refresh, with an occasional simulated fetch failure.
package market

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrFetchFailed is the simulated data-fetch failure.
var ErrFetchFailed = errors.New("failed to fetch stock data")

// Change and price perturbation bounds, in percent and fraction of base.
const (
	MaxChange    = 7.0
	MaxPriceSkew = 0.05
	maxJitter    = 10.0
)

// Options tunes the simulation.
type Options struct {
	Latency     time.Duration // simulated network delay per refresh
	FailureRate float64       // probability in [0,1] that a refresh fails
	CacheTTL    time.Duration // how long Latest may serve a snapshot
}

// Feed generates snapshots for a fixed instrument list.
// Safe for concurrent use.
type Feed struct {
	logger      *zap.Logger
	instruments []Instrument
	opts        Options
	cache       *snapshotCache
	now         func() time.Time

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// NewFeed creates a feed. A nil rng is seeded from the clock.
func NewFeed(logger *zap.Logger, instruments []Instrument, opts Options, rng *rand.Rand) (*Feed, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	cache, err := newSnapshotCache(opts.CacheTTL)
	if err != nil {
		return nil, err
	}
	return &Feed{
		logger:      logger,
		instruments: instruments,
		opts:        opts,
		cache:       cache,
		now:         time.Now,
		rng:         rng,
	}, nil
}

// Close releases the snapshot cache.
func (f *Feed) Close() { f.cache.close() }

// Refresh waits out the simulated latency and rolls a new snapshot. A
// successful snapshot replaces the cached one; a failure leaves it alone.
func (f *Feed) Refresh(ctx context.Context) (Snapshot, error) {
	if f.opts.Latency > 0 {
		timer := time.NewTimer(f.opts.Latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Snapshot{}, ctx.Err()
		case <-timer.C:
		}
	}

	snap, err := f.generate()
	if err != nil {
		f.logger.Warn("Simulated market fetch failed", zap.Error(err))
		return Snapshot{}, err
	}

	f.cache.set(snap)
	f.logger.Debug("Market snapshot refreshed",
		zap.Int("gainers", len(snap.Gainers)),
		zap.Int("losers", len(snap.Losers)))
	return snap, nil
}

// Latest returns the cached snapshot, refreshing when none is cached.
func (f *Feed) Latest(ctx context.Context) (Snapshot, error) {
	if snap, ok := f.cache.get(); ok {
		return snap, nil
	}
	return f.Refresh(ctx)
}

// Jitter perturbs a displayed portfolio value upward by up to 10.
func (f *Feed) Jitter(base float64) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return base + f.rng.Float64()*maxJitter
}

func (f *Feed) generate() (Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.rng.Float64() < f.opts.FailureRate {
		return Snapshot{}, ErrFetchFailed
	}

	movers := make([]Mover, 0, len(f.instruments))
	for _, inst := range f.instruments {
		change := f.rng.Float64()*2*MaxChange - MaxChange
		skew := inst.BasePrice * (f.rng.Float64()*2*MaxPriceSkew - MaxPriceSkew)
		movers = append(movers, NewMover(inst.Name, change, inst.BasePrice+skew))
	}
	return Partition(movers, f.now()), nil
}
