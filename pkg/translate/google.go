package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// DefaultGoogleEndpoint is the public translate endpoint used with client=gtx
const DefaultGoogleEndpoint = "https://translate.googleapis.com/translate_a/single"

// Google translates with the keyless gtx endpoint. Source language is auto-detected.
type Google struct {
	client   *resty.Client
	endpoint string
}

// NewGoogle makes google translator on top of the shared http client
func NewGoogle(httpClient *http.Client, endpoint, userAgent string) *Google {
	if endpoint == "" {
		endpoint = DefaultGoogleEndpoint
	}
	client := resty.NewWithClient(httpClient)
	if userAgent != "" {
		client.SetHeader("User-Agent", userAgent)
	}
	return &Google{client: client, endpoint: endpoint}
}

// Translate translates text to targetLang
func (g *Google) Translate(ctx context.Context, text, targetLang string) (string, error) {
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"client": "gtx",
			"sl":     "auto",
			"tl":     targetLang,
			"dt":     "t",
			"q":      text,
		}).
		Get(g.endpoint)
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("translate status: %d", resp.StatusCode())
	}
	return parseGoogleResponse(resp.Body())
}

// parseGoogleResponse joins translated sentences of [[["translated","original",...],...],...]
func parseGoogleResponse(body []byte) (string, error) {
	var raw []any
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("unmarshal translate response: %w", err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("empty translate response")
	}
	sentences, ok := raw[0].([]any)
	if !ok {
		return "", fmt.Errorf("unexpected translate response shape")
	}

	var sb strings.Builder
	for _, s := range sentences {
		parts, ok := s.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if str, ok := parts[0].(string); ok {
			sb.WriteString(str)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no translated text in response")
	}
	return sb.String(), nil
}
