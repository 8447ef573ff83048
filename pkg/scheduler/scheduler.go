// Package scheduler polls configured targets periodically and keeps the latest digest of each target
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/logos/pkg/domain"
)

//go:generate moq -out mocks/aggregator.go -pkg mocks -skip-ensure -fmt goimports . Aggregator

// Aggregator builds a digest of a target
type Aggregator interface {
	Aggregate(ctx context.Context, target domain.Target) domain.AggregatedResult
}

// Digest is an aggregated result of a target with its build time
type Digest struct {
	Target    domain.Target           `json:"-"`
	Result    domain.AggregatedResult `json:"result"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// Params configures Scheduler
type Params struct {
	Aggregator Aggregator
	Interval   time.Duration // zero disables polling, digests are built on demand only
	Targets    []domain.Target
}

// Scheduler refreshes digests of configured targets. Aggregations never overlap, so sources
// are fetched one at a time across the poller and on-demand refreshes.
type Scheduler struct {
	aggregator Aggregator
	interval   time.Duration
	targets    []domain.Target
	now        func() time.Time

	aggMu  sync.Mutex // serialize aggregations
	mu     sync.RWMutex
	latest map[string]Digest

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewScheduler creates a new scheduler instance
func NewScheduler(params Params) *Scheduler {
	return &Scheduler{
		aggregator: params.Aggregator,
		interval:   params.Interval,
		targets:    params.Targets,
		now:        time.Now,
		latest:     make(map[string]Digest),
	}
}

// Start begins polling, the first round runs immediately
func (s *Scheduler) Start(ctx context.Context) {
	if s.interval <= 0 || len(s.targets) == 0 {
		lgr.Printf("[INFO] scheduler polling disabled, interval %v, %d targets", s.interval, len(s.targets))
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.pollWorker(ctx)
	lgr.Printf("[INFO] scheduler started with interval %v, %d targets", s.interval, len(s.targets))
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// Latest returns the last digest built for the target
func (s *Scheduler) Latest(target domain.Target) (Digest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.latest[target.Key()]
	return d, ok
}

// Refresh aggregates the target now and stores the result
func (s *Scheduler) Refresh(ctx context.Context, target domain.Target) Digest {
	s.aggMu.Lock()
	res := s.aggregator.Aggregate(ctx, target)
	s.aggMu.Unlock()

	d := Digest{Target: target, Result: res, UpdatedAt: s.now()}
	s.mu.Lock()
	s.latest[target.Key()] = d
	s.mu.Unlock()
	return d
}

func (s *Scheduler) pollWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.refreshAll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refreshAll(ctx)
		}
	}
}

func (s *Scheduler) refreshAll(ctx context.Context) {
	for _, t := range s.targets {
		if ctx.Err() != nil {
			return
		}
		d := s.Refresh(ctx, t)
		lgr.Printf("[DEBUG] refreshed %s: %d ok, %d failed", t, d.Result.SuccessCount, d.Result.ErrorCount)
	}
}
