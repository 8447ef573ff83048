// Package engine is the hybrid fetch engine. It paces requests, dispatches sources by type,
// translates items concurrently and reduces price sources to price-only items.
package engine

import (
	"context"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/logos/pkg/domain"
	"github.com/umputun/logos/pkg/stealth"
)

//go:generate moq -out mocks/dispatcher.go -pkg mocks -skip-ensure -fmt goimports . Dispatcher
//go:generate moq -out mocks/translator.go -pkg mocks -skip-ensure -fmt goimports . Translator

// Dispatcher fetches and parses a source according to its type
type Dispatcher interface {
	Dispatch(ctx context.Context, src domain.Source) ([]domain.NewsItem, error)
}

// Translator translates text, returning the original on failure
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) string
}

// DefaultDisplayLang is the language of the digest
const DefaultDisplayLang = "ru"

// Params configures Engine
type Params struct {
	Dispatcher    Dispatcher
	Translator    Translator // nil disables translation
	Timing        *stealth.Timing
	PriceFilter   *PriceFilter
	BaseDelay     time.Duration
	DisplayLang   string
	MaxConcurrent int // limit of concurrent translations per fetch, 0 is unlimited
}

// Engine fetches a single source. It holds no per-request state and is safe for concurrent use.
type Engine struct {
	dispatcher    Dispatcher
	translator    Translator
	timing        *stealth.Timing
	priceFilter   *PriceFilter
	baseDelay     time.Duration
	displayLang   string
	maxConcurrent int
}

// New makes Engine
func New(p Params) *Engine {
	res := &Engine{
		dispatcher:    p.Dispatcher,
		translator:    p.Translator,
		timing:        p.Timing,
		priceFilter:   p.PriceFilter,
		baseDelay:     p.BaseDelay,
		displayLang:   p.DisplayLang,
		maxConcurrent: p.MaxConcurrent,
	}
	if res.timing == nil {
		res.timing = stealth.New(stealth.Options{})
	}
	if res.priceFilter == nil {
		res.priceFilter = NewPriceFilter(nil)
	}
	if res.baseDelay <= 0 {
		res.baseDelay = 500 * time.Millisecond
	}
	if res.displayLang == "" {
		res.displayLang = DefaultDisplayLang
	}
	return res
}

// Fetch waits a randomized delay, dispatches the source, translates items of foreign sources
// and reduces commodities sources to price tokens. Errors are *domain.FetchError.
func (e *Engine) Fetch(ctx context.Context, src domain.Source) ([]domain.NewsItem, error) {
	if err := stealth.Wait(ctx, e.timing.PreRequestDelay(e.baseDelay)); err != nil {
		return nil, domain.NewFetchError(domain.KindTransientHTTP, src.Name, err)
	}

	items, err := e.dispatcher.Dispatch(ctx, src)
	if err != nil {
		return nil, domain.WithSource(err, src.Name)
	}
	if len(items) == 0 {
		return nil, domain.NewFetchError(domain.KindEmpty, src.Name, nil)
	}

	if e.translator != nil && !strings.EqualFold(src.Language, e.displayLang) {
		items = e.translate(ctx, items)
	}

	// price pages already produce a single synthesized price item
	if src.Category == domain.CategoryCommodities && src.Type != domain.SourceHTMLPrice {
		items = e.priceFilter.Apply(src.Name, items)
		if len(items) == 0 {
			lgr.Printf("[WARN] no price tokens found in %s items", src.Name)
			return nil, domain.NewFetchError(domain.KindEmpty, src.Name, nil)
		}
	}
	return items, nil
}

// FetchWithRetry calls Fetch up to maxAttempts times with golden-ratio backoff between attempts.
// Rate limited attempts add an extended backoff. The last error is returned if all attempts fail.
func (e *Engine) FetchWithRetry(ctx context.Context, src domain.Source, maxAttempts int) ([]domain.NewsItem, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var items []domain.NewsItem
	var lastErr error
	attempt := 0
	retrier := repeater.NewWithStrategy(maxAttempts, &goldenBackoff{timing: e.timing, base: e.baseDelay})
	err := retrier.Do(ctx, func() error {
		attempt++
		res, err := e.Fetch(ctx, src)
		if err == nil {
			items = res
			return nil
		}
		lastErr = err
		lgr.Printf("[WARN] fetch %s, attempt %d/%d failed: %v", src.Name, attempt, maxAttempts, err)
		if domain.KindOf(err) == domain.KindRateLimited && attempt < maxAttempts {
			if werr := stealth.Wait(ctx, e.timing.RateLimitDelay(attempt-1)); werr != nil {
				return werr
			}
		}
		return err
	})
	if err == nil {
		return items, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, domain.WithSource(err, src.Name)
}

// translate fans out one task per item, each result lands back on its own index
func (e *Engine) translate(ctx context.Context, items []domain.NewsItem) []domain.NewsItem {
	res := make([]domain.NewsItem, len(items))
	copy(res, items)

	g, gctx := errgroup.WithContext(ctx)
	if e.maxConcurrent > 0 {
		g.SetLimit(e.maxConcurrent)
	}
	for i := range res {
		g.Go(func() error {
			res[i].Title = e.translator.Translate(gctx, res[i].Title, e.displayLang)
			if res[i].Description != "" {
				res[i].Description = e.translator.Translate(gctx, res[i].Description, e.displayLang)
			}
			return nil
		})
	}
	_ = g.Wait() // tasks never fail, translation falls back to original text
	return res
}

// goldenBackoff is a repeater strategy with base·φ^attempt delays
type goldenBackoff struct {
	timing *stealth.Timing
	base   time.Duration
}

// NextDelay returns delay before the given retry, attempts start from 1
func (b *goldenBackoff) NextDelay(attempt int) time.Duration {
	return b.timing.RetryDelay(b.base, attempt)
}
