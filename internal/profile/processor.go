package profile

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/atharvakonge/tradedesk/internal/db"
	"github.com/atharvakonge/tradedesk/internal/models"
)

// MutateFunc edits a loaded profile in place. Returning an error discards
// the edit.
type MutateFunc func(p *models.Profile) error

// MutationResult is what a worker sends back for one mutation.
type MutationResult struct {
	Profile *models.Profile
	Err     error
}

// mutationRequest is a mutation waiting in the queue.
type mutationRequest struct {
	ctx      context.Context
	username string
	op       string
	mutate   MutateFunc          // nil deletes the profile
	resultCh chan MutationResult // Channel to send result back
}

// Processor applies profile mutations on a worker pool. Mutations of the
// same user are serialized; different users proceed in parallel.
type Processor struct {
	logger  *zap.Logger
	store   db.Store
	workers int
	queue   chan mutationRequest
	stopCh  chan struct{}
	wg      sync.WaitGroup
	locks   *models.UserLocks
}

// NewProcessor creates a processor with the given number of workers.
func NewProcessor(logger *zap.Logger, store db.Store, workers int) *Processor {
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		logger:  logger,
		store:   store,
		workers: workers,
		queue:   make(chan mutationRequest, 100),
		stopCh:  make(chan struct{}),
		locks:   models.NewUserLocks(),
	}
}

// Start starts the worker pool
func (p *Processor) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	p.logger.Info("Started profile workers", zap.Int("workers", p.workers))
}

// Stop gracefully stops all workers
func (p *Processor) Stop() {
	close(p.stopCh)
	p.wg.Wait()
	p.logger.Info("Profile processor stopped")
}

func (p *Processor) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopCh:
			p.logger.Debug("Profile worker stopping", zap.Int("worker", id))
			return

		case req := <-p.queue:
			p.logger.Debug("Worker processing mutation",
				zap.Int("worker", id),
				zap.String("user", req.username),
				zap.String("op", req.op))

			req.resultCh <- p.apply(req)
		}
	}
}

// apply runs one load-mutate-save cycle under the user's lock.
func (p *Processor) apply(req mutationRequest) MutationResult {
	p.locks.Lock(req.username)
	defer p.locks.Unlock(req.username)

	if err := req.ctx.Err(); err != nil {
		return MutationResult{Err: err}
	}

	if req.mutate == nil {
		return MutationResult{Err: p.store.DeleteProfile(req.ctx, req.username)}
	}

	prof, err := p.store.GetProfile(req.ctx, req.username)
	if err != nil {
		return MutationResult{Err: err}
	}
	if err := req.mutate(prof); err != nil {
		return MutationResult{Err: err}
	}
	if err := p.store.SaveProfile(req.ctx, prof); err != nil {
		p.logger.Error("Failed to save profile", zap.String("user", req.username), zap.Error(err))
		return MutationResult{Err: err}
	}
	return MutationResult{Profile: prof}
}

// Submit queues a mutation and waits for its result.
func (p *Processor) Submit(ctx context.Context, username, op string, mutate MutateFunc) (*models.Profile, error) {
	if mutate == nil {
		return nil, errors.New("nil mutation")
	}
	return p.enqueue(ctx, username, op, mutate)
}

// Remove deletes the user's profile, ordered with that user's other
// mutations.
func (p *Processor) Remove(ctx context.Context, username string) error {
	_, err := p.enqueue(ctx, username, "delete", nil)
	return err
}

func (p *Processor) enqueue(ctx context.Context, username, op string, mutate MutateFunc) (*models.Profile, error) {
	// buffered so a worker never blocks on a caller that gave up
	resultCh := make(chan MutationResult, 1)

	select {
	case p.queue <- mutationRequest{ctx: ctx, username: username, op: op, mutate: mutate, resultCh: resultCh}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case res := <-resultCh:
		return res.Profile, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
