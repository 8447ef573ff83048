package content

import (
	"math/rand"
	"net/http"

	"github.com/umputun/logos/pkg/domain"
)

// accept headers per source type
const (
	AcceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"
	AcceptRSS  = "application/rss+xml,application/xml,text/xml;q=0.9,*/*;q=0.8"
	AcceptJSON = "application/json,text/plain;q=0.9,*/*;q=0.8"
)

// acceptLanguages contains common browser Accept-Language values, russian is always present
var acceptLanguages = []string{
	"en-US,en;q=0.9,ru;q=0.8",
	"en-GB,en;q=0.9,ru;q=0.8",
	"ru-RU,ru;q=0.9,en-US;q=0.8,en;q=0.7",
	"en-US,en;q=0.9,de;q=0.8,ru;q=0.7",
	"uk-UA,uk;q=0.9,ru;q=0.8,en;q=0.7",
}

// secFetchModes for different request contexts
var secFetchModes = []string{
	"navigate",
	"no-cors",
	"cors",
}

// AddBrowserHeaders adds browser-like headers to the request, Accept depends on the source type.
// Accept-Encoding and User-Agent are left to the transport.
func AddBrowserHeaders(req *http.Request, st domain.SourceType) {
	req.Header.Set("Cache-Control", "no-cache")

	// randomized language
	req.Header.Set("Accept-Language", acceptLanguages[rand.Intn(len(acceptLanguages))]) //nolint:gosec // non-cryptographic randomness is fine for header variation

	// dnt - 30% chance of being set
	if rand.Float32() < 0.3 { //nolint:gosec // non-cryptographic randomness is fine
		req.Header.Set("DNT", "1")
	}

	// connection header
	if rand.Float32() < 0.8 { //nolint:gosec // non-cryptographic randomness is fine, 80% keep-alive
		req.Header.Set("Connection", "keep-alive")
	}

	switch st {
	case domain.SourceRSS:
		req.Header.Set("Accept", AcceptRSS)
	case domain.SourceNewsAPI:
		req.Header.Set("Accept", AcceptJSON)
	default:
		// telegram mirror and price pages are regular html documents opened by a user
		req.Header.Set("Accept", AcceptHTML)
		req.Header.Set("Pragma", "no-cache")
		req.Header.Set("Upgrade-Insecure-Requests", "1")
		req.Header.Set("Sec-Fetch-Dest", "document")
		req.Header.Set("Sec-Fetch-Mode", secFetchModes[rand.Intn(len(secFetchModes))]) //nolint:gosec // non-cryptographic randomness is fine
		req.Header.Set("Sec-Fetch-Site", "none")
		req.Header.Set("Sec-Fetch-User", "?1")
	}
}
