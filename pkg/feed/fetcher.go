package feed

import (
	"compress/gzip"
	"compress/zlib"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"

	"github.com/umputun/logos/pkg/content"
	"github.com/umputun/logos/pkg/domain"
)

// DefaultUserAgent is a desktop chrome user agent
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const maxBodySize = 10 * 1024 * 1024

// ClientOptions configures the shared http client, zero values mean defaults
type ClientOptions struct {
	Timeout        time.Duration
	ConnectTimeout time.Duration
	MaxRedirects   int
	MaxIdlePerHost int
	UserAgent      string
}

// NewHTTPClient makes the http client shared by all fetches. It is never mutated after construction.
// The transport requests gzip, deflate and brotli and decodes responses transparently.
func NewHTTPClient(opts ClientOptions) *http.Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 10 * time.Second
	}
	if opts.MaxRedirects <= 0 {
		opts.MaxRedirects = 3
	}
	if opts.MaxIdlePerHost <= 0 {
		opts.MaxIdlePerHost = 5
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	dialer := &net.Dialer{Timeout: opts.ConnectTimeout, KeepAlive: 30 * time.Second}
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: opts.MaxIdlePerHost,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: opts.ConnectTimeout,
		DisableCompression:  true, // decoded by decodingTransport, including brotli
	}

	maxRedirects := opts.MaxRedirects
	return &http.Client{
		Timeout:   opts.Timeout,
		Transport: &decodingTransport{base: transport, userAgent: opts.UserAgent},
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}
}

// decodingTransport sets user agent and accept-encoding, and decodes compressed responses
type decodingTransport struct {
	base      http.RoundTripper
	userAgent string
}

// RoundTrip implements http.RoundTripper
func (t *decodingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", "gzip, deflate, br")
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip":
		body, err = gzip.NewReader(resp.Body)
	case "deflate":
		body, err = zlib.NewReader(resp.Body)
	case "br":
		body = brotli.NewReader(resp.Body)
	default:
		return resp, nil
	}
	if errors.Is(err, io.EOF) { // empty compressed body
		body, err = http.NoBody, nil
	}
	if err != nil {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("decode %s body: %w", resp.Header.Get("Content-Encoding"), err)
	}

	resp.Body = &decodedBody{Reader: body, raw: resp.Body}
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true
	return resp, nil
}

type decodedBody struct {
	io.Reader
	raw io.Closer
}

func (b *decodedBody) Close() error {
	if c, ok := b.Reader.(io.Closer); ok {
		_ = c.Close()
	}
	return b.raw.Close()
}

// CheckStatus maps http status to FetchError. 2xx and 3xx are success, unmapped 4xx and 5xx are transient.
func CheckStatus(code int, source string) error {
	switch {
	case code == http.StatusTooManyRequests:
		return domain.NewFetchError(domain.KindRateLimited, source, nil)
	case code == http.StatusForbidden:
		return domain.NewFetchError(domain.KindForbidden, source, nil)
	case code == http.StatusNotFound:
		return domain.NewFetchError(domain.KindNotFound, source, nil)
	case code >= http.StatusBadRequest:
		return domain.NewFetchError(domain.KindTransientHTTP, source, fmt.Errorf("unexpected status code: %d", code))
	}
	return nil
}

// HTTPFetcher retrieves raw source pages with browser-like headers
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher makes fetcher on top of the shared client
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{client: client}
}

// Fetch retrieves the source url and returns the decoded body
func (f *HTTPFetcher) Fetch(ctx context.Context, src domain.Source) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, http.NoBody)
	if err != nil {
		return nil, domain.NewFetchError(domain.KindTransientHTTP, src.Name, fmt.Errorf("create request: %w", err))
	}
	content.AddBrowserHeaders(req, src.Type)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, domain.NewFetchError(domain.KindTransientHTTP, src.Name, fmt.Errorf("fetch %s: %w", src.URL, err))
	}
	defer resp.Body.Close()

	if err := CheckStatus(resp.StatusCode, src.Name); err != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024)) // let the connection be reused
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, domain.NewFetchError(domain.KindTransientHTTP, src.Name, fmt.Errorf("read body: %w", err))
	}
	return body, nil
}
