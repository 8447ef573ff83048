package feed

import (
	"context"
	"fmt"
	"net/http"

	"github.com/umputun/logos/pkg/domain"
)

// Dispatcher routes a source to the retrieval and parsing strategy of its type.
// The set of source types is closed, an unknown type is a parse failure.
type Dispatcher struct {
	fetcher  *HTTPFetcher
	rss      *RSSParser
	telegram *TelegramParser
	newsAPI  *NewsAPIClient
	price    *PriceScraper
}

// DispatcherParams configures Dispatcher
type DispatcherParams struct {
	HTTPClient    *http.Client
	UserAgent     string
	MaxItems      int
	Junk          JunkChecker
	NewsAPIKeyEnv string
	Getenv        func(string) string
	PricePatterns map[string]PricePattern
}

// NewDispatcher makes dispatcher with all four parsers sharing one http client
func NewDispatcher(params DispatcherParams) *Dispatcher {
	if params.MaxItems <= 0 {
		params.MaxItems = 5
	}
	return &Dispatcher{
		fetcher:  NewHTTPFetcher(params.HTTPClient),
		rss:      NewRSSParser(params.MaxItems, params.Junk),
		telegram: NewTelegramParser(params.MaxItems, params.Junk),
		newsAPI: NewNewsAPIClient(NewsAPIParams{
			HTTPClient: params.HTTPClient,
			UserAgent:  params.UserAgent,
			MaxItems:   params.MaxItems,
			Junk:       params.Junk,
			KeyEnv:     params.NewsAPIKeyEnv,
			Getenv:     params.Getenv,
		}),
		price: NewPriceScraper(params.PricePatterns),
	}
}

// Dispatch fetches and parses the source, errors are *domain.FetchError
func (d *Dispatcher) Dispatch(ctx context.Context, src domain.Source) ([]domain.NewsItem, error) {
	switch src.Type {
	case domain.SourceRSS:
		body, err := d.fetcher.Fetch(ctx, src)
		if err != nil {
			return nil, err
		}
		return d.rss.Parse(src, body)
	case domain.SourceTelegram:
		body, err := d.fetcher.Fetch(ctx, src)
		if err != nil {
			return nil, err
		}
		return d.telegram.Parse(src, body)
	case domain.SourceNewsAPI:
		return d.newsAPI.Fetch(ctx, src)
	case domain.SourceHTMLPrice:
		body, err := d.fetcher.Fetch(ctx, src)
		if err != nil {
			return nil, err
		}
		return d.price.Parse(src, body)
	default:
		return nil, domain.NewFetchError(domain.KindParseFailure, src.Name, fmt.Errorf("unsupported source type %q", src.Type))
	}
}
