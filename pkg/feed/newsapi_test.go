package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/logos/pkg/content"
	"github.com/umputun/logos/pkg/domain"
)

func TestNewsAPIClient_Fetch(t *testing.T) {
	junk := content.NewJunkFilter(content.JunkOptions{})
	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}

	t.Run("success keeps api order", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "secret", r.URL.Query().Get("apikey"))
			assert.Equal(t, "world", r.URL.Query().Get("category"))
			assert.Equal(t, content.AcceptJSON, r.Header.Get("Accept"))
			assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"success","results":[
				{"title":"First headline","description":"<p>Some <b>details</b></p>","link":"https://n.example/1","pubDate":"2024-01-02 10:00:00"},
				{"title":"","description":"no title here","link":"https://n.example/2","pubDate":"2024-01-02 09:00:00"},
				{"title":"Tennis star wins","link":"https://n.example/3"},
				{"title":"Third headline","link":"https://n.example/4","pubDate":"2024-01-02 08:00:00"}
			]}`))
		}))
		defer server.Close()

		c := NewNewsAPIClient(NewsAPIParams{HTTPClient: &http.Client{}, MaxItems: 5, Junk: junk,
			Getenv: env(map[string]string{DefaultNewsAPIKeyEnv: "secret"})})
		items, err := c.Fetch(context.Background(), domain.Source{Name: "NewsData", URL: server.URL + "/api/1/news?category=world"})
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, domain.NewsItem{Title: "First headline", Description: "Some details", Link: "https://n.example/1",
			TimeLabel: "2024-01-02 10:00:00"}, items[0])
		assert.Equal(t, "Untitled", items[1].Title)
		assert.Equal(t, "no title here", items[1].Description)
		assert.Equal(t, "Third headline", items[2].Title)
	})

	t.Run("cap applied", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"success","results":[{"title":"a"},{"title":"b"},{"title":"c"}]}`))
		}))
		defer server.Close()

		c := NewNewsAPIClient(NewsAPIParams{HTTPClient: &http.Client{}, MaxItems: 2, Junk: junk, KeyEnv: "MY_KEY",
			Getenv: env(map[string]string{"MY_KEY": "k"})})
		items, err := c.Fetch(context.Background(), domain.Source{Name: "NewsData", URL: server.URL})
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "a", items[0].Title)
		assert.Equal(t, "b", items[1].Title)
	})

	t.Run("missing key fails fast", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
		}))
		defer server.Close()

		c := NewNewsAPIClient(NewsAPIParams{HTTPClient: &http.Client{}, MaxItems: 5, Junk: junk, Getenv: env(nil)})
		_, err := c.Fetch(context.Background(), domain.Source{Name: "NewsData", URL: server.URL})
		require.Error(t, err)
		assert.Equal(t, domain.KindMissingCredential, domain.KindOf(err))
		assert.Contains(t, err.Error(), DefaultNewsAPIKeyEnv)
		assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	})

	t.Run("status mapped", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		c := NewNewsAPIClient(NewsAPIParams{HTTPClient: &http.Client{}, MaxItems: 5, Junk: junk,
			Getenv: env(map[string]string{DefaultNewsAPIKeyEnv: "k"})})
		_, err := c.Fetch(context.Background(), domain.Source{Name: "NewsData", URL: server.URL})
		require.Error(t, err)
		assert.Equal(t, domain.KindRateLimited, domain.KindOf(err))
	})

	t.Run("malformed and error responses", func(t *testing.T) {
		c := NewNewsAPIClient(NewsAPIParams{HTTPClient: &http.Client{}, MaxItems: 5, Junk: junk})
		src := domain.Source{Name: "NewsData"}

		_, err := c.Parse(src, []byte(`{not json`))
		assert.Equal(t, domain.KindParseFailure, domain.KindOf(err))

		_, err = c.Parse(src, []byte(`{"status":"error","results":{"message":"bad key"}}`))
		assert.Equal(t, domain.KindParseFailure, domain.KindOf(err))

		_, err = c.Parse(src, []byte(`{"status":"success","results":[]}`))
		assert.Equal(t, domain.KindEmpty, domain.KindOf(err))
	})
}
