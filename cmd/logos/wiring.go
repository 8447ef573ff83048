package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/umputun/logos/pkg/config"
	"github.com/umputun/logos/pkg/content"
	"github.com/umputun/logos/pkg/domain"
	"github.com/umputun/logos/pkg/engine"
	"github.com/umputun/logos/pkg/feed"
	"github.com/umputun/logos/pkg/stealth"
	"github.com/umputun/logos/pkg/translate"
)

// digests are rebuilt on request after this age when polling is off
const defaultDigestMaxAge = 5 * time.Minute

// newEngine builds the fetch engine with the shared http client, all parsers and the translation backend
func newEngine(cfg *config.Config) *engine.Engine {
	client := feed.NewHTTPClient(feed.ClientOptions{
		Timeout:        cfg.HTTP.Timeout,
		ConnectTimeout: cfg.HTTP.ConnectTimeout,
		MaxRedirects:   cfg.HTTP.MaxRedirects,
		MaxIdlePerHost: cfg.HTTP.MaxIdlePerHost,
		UserAgent:      cfg.HTTP.UserAgent,
	})

	junk := content.NewJunkFilter(content.JunkOptions{
		SystemMessages:  cfg.Junk.SystemMessages,
		Keywords:        cfg.Junk.Keywords,
		DisableKeywords: cfg.Junk.DisableKeywords,
	})

	dispatcher := feed.NewDispatcher(feed.DispatcherParams{
		HTTPClient:    client,
		UserAgent:     cfg.HTTP.UserAgent,
		MaxItems:      cfg.Fetch.MaxItems,
		Junk:          junk,
		NewsAPIKeyEnv: cfg.NewsAPI.KeyEnv,
		Getenv:        os.Getenv,
		PricePatterns: cfg.CompiledPricePatterns(),
	})

	params := engine.Params{
		Dispatcher:    dispatcher,
		Timing:        stealth.New(stealth.Options{}),
		PriceFilter:   engine.NewPriceFilter(cfg.CompiledPriceFilters()),
		BaseDelay:     cfg.Fetch.BaseDelay,
		DisplayLang:   cfg.Fetch.DisplayLanguage,
		MaxConcurrent: cfg.Fetch.MaxConcurrent,
	}
	if provider := newTranslator(cfg, client); provider != nil {
		params.Translator = translate.NewBestEffort(provider)
	}
	return engine.New(params)
}

// newTranslator returns the configured translation backend, nil when translation is off
func newTranslator(cfg *config.Config, client *http.Client) translate.Provider {
	switch cfg.Translate.Provider {
	case config.ProviderOpenAI:
		return translate.NewOpenAI(translate.OpenAIConfig{
			APIKey:   cfg.Translate.APIKey,
			Endpoint: cfg.Translate.Endpoint,
			Model:    cfg.Translate.Model,
			Client:   client,
		})
	case config.ProviderGoogle:
		return translate.NewGoogle(client, cfg.Translate.Endpoint, cfg.HTTP.UserAgent)
	default:
		return nil
	}
}

func categoryNames() string {
	res := make([]string, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		res = append(res, string(c))
	}
	return strings.Join(res, ", ")
}
