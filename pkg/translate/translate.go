// Package translate provides best-effort translation of news items. Backends may fail,
// BestEffort never does and falls back to the original text.
package translate

import (
	"context"
	"strings"

	"github.com/go-pkgz/lgr"
)

//go:generate moq -out mocks/provider.go -pkg mocks -skip-ensure -fmt goimports . Provider

// Provider is a translation backend
type Provider interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// BestEffort wraps a provider and degrades to the original text on any failure
type BestEffort struct {
	provider Provider
}

// NewBestEffort makes BestEffort translator, nil provider disables translation
func NewBestEffort(provider Provider) *BestEffort {
	return &BestEffort{provider: provider}
}

// Translate returns translated text or the original one if translation failed or returned nothing
func (b *BestEffort) Translate(ctx context.Context, text, targetLang string) string {
	if b.provider == nil || strings.TrimSpace(text) == "" || targetLang == "" {
		return text
	}
	res, err := b.provider.Translate(ctx, text, targetLang)
	if err != nil {
		lgr.Printf("[DEBUG] translation to %s failed, keep original: %v", targetLang, err)
		return text
	}
	if strings.TrimSpace(res) == "" {
		return text
	}
	return res
}
