package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/umputun/logos/pkg/content"
	"github.com/umputun/logos/pkg/domain"
)

// DefaultNewsAPIKeyEnv is the environment variable holding the news API key
const DefaultNewsAPIKeyEnv = "NEWSDATA_API_KEY"

// untitled replaces missing titles of news API results
const untitled = "Untitled"

// NewsAPIClient queries a newsdata.io style JSON news API. Source url is the query endpoint,
// the api key is added from the environment on every request.
type NewsAPIClient struct {
	client   *resty.Client
	maxItems int
	junk     JunkChecker
	keyEnv   string
	getenv   func(string) string
}

// NewsAPIParams configures NewsAPIClient
type NewsAPIParams struct {
	HTTPClient *http.Client
	UserAgent  string
	MaxItems   int
	Junk       JunkChecker
	KeyEnv     string              // defaults to DefaultNewsAPIKeyEnv
	Getenv     func(string) string // defaults to os.Getenv
}

type newsAPIResponse struct {
	Status  string           `json:"status"`
	Results []newsAPIArticle `json:"results"`
}

type newsAPIArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	PubDate     string `json:"pubDate"`
}

// NewNewsAPIClient makes news API client sharing the given http client
func NewNewsAPIClient(params NewsAPIParams) *NewsAPIClient {
	if params.KeyEnv == "" {
		params.KeyEnv = DefaultNewsAPIKeyEnv
	}
	if params.Getenv == nil {
		params.Getenv = os.Getenv
	}
	if params.UserAgent == "" {
		params.UserAgent = DefaultUserAgent
	}
	client := resty.NewWithClient(params.HTTPClient).
		SetHeader("User-Agent", params.UserAgent).
		SetHeader("Accept", content.AcceptJSON)

	return &NewsAPIClient{
		client:   client,
		maxItems: params.MaxItems,
		junk:     params.Junk,
		keyEnv:   params.KeyEnv,
		getenv:   params.Getenv,
	}
}

// Fetch queries the API for the source. Missing key fails fast with MissingCredential,
// no request is made in this case.
func (c *NewsAPIClient) Fetch(ctx context.Context, src domain.Source) ([]domain.NewsItem, error) {
	key := strings.TrimSpace(c.getenv(c.keyEnv))
	if key == "" {
		return nil, domain.NewFetchError(domain.KindMissingCredential, src.Name, fmt.Errorf("%s is not set", c.keyEnv))
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("apikey", key).
		Get(src.URL)
	if err != nil {
		return nil, domain.NewFetchError(domain.KindTransientHTTP, src.Name, fmt.Errorf("query news api: %w", err))
	}
	if err := CheckStatus(resp.StatusCode(), src.Name); err != nil {
		return nil, err
	}
	return c.Parse(src, resp.Body())
}

// Parse converts API response body to items, API order is kept
func (c *NewsAPIClient) Parse(src domain.Source, body []byte) ([]domain.NewsItem, error) {
	var resp newsAPIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, domain.NewFetchError(domain.KindParseFailure, src.Name, fmt.Errorf("unmarshal news api response: %w", err))
	}
	if resp.Status != "" && resp.Status != "success" {
		return nil, domain.NewFetchError(domain.KindParseFailure, src.Name, fmt.Errorf("news api status %q", resp.Status))
	}

	res := make([]domain.NewsItem, 0, c.maxItems)
	for _, a := range resp.Results {
		if len(res) >= c.maxItems {
			break
		}
		title := content.Clean(a.Title)
		if title == "" {
			title = untitled
		}
		if c.junk.IsJunk(title) {
			continue
		}
		res = append(res, domain.NewsItem{
			Title:       title,
			Description: content.Clean(content.StripHTML(a.Description)),
			Link:        a.Link,
			TimeLabel:   a.PubDate,
		})
	}

	if len(res) == 0 {
		return nil, domain.NewFetchError(domain.KindEmpty, src.Name, nil)
	}
	return res, nil
}
