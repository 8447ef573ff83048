// Package aggregator resolves a fetch target to sources, fetches them one by one and
// assembles the digest with success and failure counts.
package aggregator

import (
	"context"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/logos/pkg/digest"
	"github.com/umputun/logos/pkg/domain"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/registry.go -pkg mocks -skip-ensure -fmt goimports . Registry
//go:generate moq -out mocks/health_recorder.go -pkg mocks -skip-ensure -fmt goimports . HealthRecorder

// Fetcher fetches a single source with retries
type Fetcher interface {
	FetchWithRetry(ctx context.Context, src domain.Source, maxAttempts int) ([]domain.NewsItem, error)
}

// Registry is the read-only source table
type Registry interface {
	Find(name string) (domain.Source, bool)
	ByCategory(c domain.Category) []domain.Source
}

// HealthRecorder keeps per-source fetch history
type HealthRecorder interface {
	RecordSuccess(ctx context.Context, name string, items int) error
	RecordFailure(ctx context.Context, name, errMsg string) error
}

// DefaultAttempts is the number of fetch attempts per source
const DefaultAttempts = 2

// Params configures Aggregator
type Params struct {
	Fetcher   Fetcher
	Registry  Registry
	Formatter *digest.Formatter
	Health    HealthRecorder // optional
	Attempts  int
}

// Aggregator fetches all sources of a target sequentially. Sources are never fetched in parallel
// to keep stealth pacing between requests.
type Aggregator struct {
	fetcher   Fetcher
	registry  Registry
	formatter *digest.Formatter
	health    HealthRecorder
	attempts  int
}

// New makes Aggregator
func New(p Params) *Aggregator {
	res := &Aggregator{
		fetcher:   p.Fetcher,
		registry:  p.Registry,
		formatter: p.Formatter,
		health:    p.Health,
		attempts:  p.Attempts,
	}
	if res.formatter == nil {
		res.formatter = digest.NewFormatter(0)
	}
	if res.attempts <= 0 {
		res.attempts = DefaultAttempts
	}
	return res
}

// Resolve returns sources of the target. A category resolves to all its sources in registry order,
// a source name to zero or one source matched case-insensitively.
func (a *Aggregator) Resolve(target domain.Target) []domain.Source {
	if target.Source != "" {
		src, ok := a.registry.Find(target.Source)
		if !ok {
			return nil
		}
		return []domain.Source{src}
	}
	return a.registry.ByCategory(target.Category)
}

// Aggregate fetches every source of the target and never stops on a failed source.
// A target without sources yields a single error and makes no fetches.
func (a *Aggregator) Aggregate(ctx context.Context, target domain.Target) domain.AggregatedResult {
	res := domain.AggregatedResult{Header: digest.Header(target)}

	sources := a.Resolve(target)
	if len(sources) == 0 {
		lgr.Printf("[WARN] no sources for %s", target)
		res.Content = digest.NoSourcesContent
		res.ErrorCount = 1
		return res
	}

	lgr.Printf("[INFO] aggregating %s, %d sources", target, len(sources))
	var sb strings.Builder
	res.Sources = make([]domain.SourceResult, 0, len(sources))
	for _, src := range sources {
		items, err := a.fetcher.FetchWithRetry(ctx, src, a.attempts)
		if err != nil {
			lgr.Printf("[ERROR] failed to fetch %s: %v", src.Name, err)
			sb.WriteString(a.formatter.FormatError(src, err))
			res.ErrorCount++
			res.Sources = append(res.Sources, domain.SourceResult{Source: src, Err: err, Error: err.Error()})
			a.recordFailure(ctx, src, err)
			continue
		}
		lgr.Printf("[DEBUG] fetched %d items from %s", len(items), src.Name)
		sb.WriteString(a.formatter.FormatItems(src, items))
		sb.WriteString("\n")
		res.SuccessCount++
		res.Sources = append(res.Sources, domain.SourceResult{Source: src, Items: items})
		a.recordSuccess(ctx, src, len(items))
	}
	res.Content = sb.String()
	lgr.Printf("[INFO] aggregated %s: %d ok, %d failed", target, res.SuccessCount, res.ErrorCount)
	return res
}

func (a *Aggregator) recordSuccess(ctx context.Context, src domain.Source, items int) {
	if a.health == nil {
		return
	}
	if err := a.health.RecordSuccess(ctx, src.Name, items); err != nil {
		lgr.Printf("[WARN] failed to record success of %s: %v", src.Name, err)
	}
}

func (a *Aggregator) recordFailure(ctx context.Context, src domain.Source, fetchErr error) {
	if a.health == nil {
		return
	}
	if err := a.health.RecordFailure(ctx, src.Name, fetchErr.Error()); err != nil {
		lgr.Printf("[WARN] failed to record failure of %s: %v", src.Name, err)
	}
}
