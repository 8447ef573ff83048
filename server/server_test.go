package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/logos/pkg/domain"
	"github.com/umputun/logos/pkg/scheduler"
	"github.com/umputun/logos/server/mocks"
)

var testSources = []domain.Source{
	{Name: "Reuters", URL: "https://example.com/rss", Type: domain.SourceRSS, Category: domain.CategoryGlobal, Language: "en"},
	{Name: "TASS", URL: "https://t.me/s/tass_agency", Type: domain.SourceTelegram, Category: domain.CategoryWar, Language: "ru"},
}

func testRegistry() *mocks.RegistryMock {
	return &mocks.RegistryMock{
		AllFunc: func() []domain.Source { return testSources },
		FindFunc: func(name string) (domain.Source, bool) {
			for _, s := range testSources {
				if strings.EqualFold(s.Name, name) {
					return s, true
				}
			}
			return domain.Source{}, false
		},
		ByCategoryFunc: func(c domain.Category) []domain.Source {
			var res []domain.Source
			for _, s := range testSources {
				if s.Category == c {
					res = append(res, s)
				}
			}
			return res
		},
	}
}

func testConfig() *mocks.ConfigProviderMock {
	return &mocks.ConfigProviderMock{GetServerConfigFunc: func() (string, time.Duration) { return ":8080", 30 * time.Second }}
}

func globalResult() domain.AggregatedResult {
	return domain.AggregatedResult{
		Header:       "🖤 Global News Feed",
		Content:      "🏴 <b>Reuters</b>\n\n▪️ Talks resume\n   └ 🕷 <code>10:00</code>\n\n",
		SuccessCount: 1,
		ErrorCount:   1,
		Sources: []domain.SourceResult{
			{Source: testSources[0], Items: []domain.NewsItem{{Title: "Talks resume", Link: "https://example.com/a", TimeLabel: "10:00"}}},
			{Source: domain.Source{Name: "Kommersant"}, Err: errors.New("forbidden (403)"), Error: "forbidden (403)"},
		},
	}
}

func TestServer_Run(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) {
			return fmt.Sprintf("127.0.0.1:%d", port), 30 * time.Second
		},
	}
	srv := New(Params{Config: cfg, Registry: testRegistry(), Digests: &mocks.DigestsMock{}, Version: "1.0.0"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/ping", port))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "pong"
	}, 2*time.Second, 20*time.Millisecond)

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/api/v1/status", port))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "logos", resp.Header.Get("App-Name"))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_status(t *testing.T) {
	srv := New(Params{Config: testConfig(), Registry: testRegistry(), Digests: &mocks.DigestsMock{}, Version: "1.2.3"})

	req := httptest.NewRequest("GET", "/api/v1/status", http.NoBody)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var status map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "1.2.3", status["version"])
	assert.InDelta(t, 2, status["sources"], 0)
	assert.NotEmpty(t, status["time"])
}

func TestServer_sources(t *testing.T) {
	srv := New(Params{Config: testConfig(), Registry: testRegistry(), Digests: &mocks.DigestsMock{}})

	req := httptest.NewRequest("GET", "/api/v1/sources", http.NoBody)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var res []domain.Source
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, testSources, res)
}

func TestServer_health(t *testing.T) {
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("list", func(t *testing.T) {
		health := &mocks.HealthStoreMock{ListFunc: func(ctx context.Context) ([]domain.SourceHealth, error) {
			return []domain.SourceHealth{{Name: "Reuters", LastFetched: &ts, SuccessCount: 3, ErrorCount: 1, LastError: "boom"}}, nil
		}}
		srv := New(Params{Config: testConfig(), Registry: testRegistry(), Digests: &mocks.DigestsMock{}, Health: health})

		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/health", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		var res []domain.SourceHealth
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Len(t, res, 1)
		assert.Equal(t, 3, res[0].SuccessCount)
		assert.Equal(t, "boom", res[0].LastError)
		assert.True(t, res[0].LastFetched.Equal(ts))
	})

	t.Run("store error", func(t *testing.T) {
		health := &mocks.HealthStoreMock{ListFunc: func(ctx context.Context) ([]domain.SourceHealth, error) {
			return nil, errors.New("db is gone")
		}}
		srv := New(Params{Config: testConfig(), Registry: testRegistry(), Digests: &mocks.DigestsMock{}, Health: health})

		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/health", http.NoBody))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "can't list source health")
	})

	t.Run("no store", func(t *testing.T) {
		srv := New(Params{Config: testConfig(), Registry: testRegistry(), Digests: &mocks.DigestsMock{}})
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/health", http.NoBody))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})
}

func TestServer_digest(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	cached := scheduler.Digest{Target: domain.CategoryTarget(domain.CategoryGlobal), Result: globalResult(), UpdatedAt: now.Add(-time.Minute)}

	newDigests := func(latest bool) *mocks.DigestsMock {
		return &mocks.DigestsMock{
			LatestFunc: func(target domain.Target) (scheduler.Digest, bool) {
				if !latest {
					return scheduler.Digest{}, false
				}
				return cached, true
			},
			RefreshFunc: func(ctx context.Context, target domain.Target) scheduler.Digest {
				return scheduler.Digest{Target: target, Result: globalResult(), UpdatedAt: now}
			},
		}
	}

	t.Run("cached", func(t *testing.T) {
		digests := newDigests(true)
		srv := New(Params{Config: testConfig(), Registry: testRegistry(), Digests: digests, MaxAge: 5 * time.Minute})
		srv.now = func() time.Time { return now }

		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/digest/GLOBAL", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)

		var res digestResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "global", res.Target)
		assert.Equal(t, "🖤 Global News Feed", res.Header)
		assert.Equal(t, 1, res.SuccessCount)
		assert.Equal(t, 1, res.ErrorCount)
		require.Len(t, res.Messages, 1)
		assert.True(t, strings.HasPrefix(res.Messages[0], "<b>🖤 Global News Feed</b>\n\n"))
		assert.Contains(t, res.Messages[0], "✅ 1 sources | ❌ 1 failed")
		require.Len(t, res.Sources, 2)
		assert.Equal(t, "forbidden (403)", res.Sources[1].Error)
		assert.Empty(t, digests.RefreshCalls())
		assert.Equal(t, domain.CategoryTarget(domain.CategoryGlobal), digests.LatestCalls()[0].Target)
	})

	t.Run("stale cache rebuilt", func(t *testing.T) {
		digests := newDigests(true)
		srv := New(Params{Config: testConfig(), Registry: testRegistry(), Digests: digests, MaxAge: 30 * time.Second})
		srv.now = func() time.Time { return now }

		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/digest/global", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, digests.RefreshCalls(), 1)
	})

	t.Run("forced refresh of a source", func(t *testing.T) {
		digests := newDigests(true)
		srv := New(Params{Config: testConfig(), Registry: testRegistry(), Digests: digests})

		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/digest/tass?refresh=true", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, digests.RefreshCalls(), 1)
		assert.Equal(t, domain.SourceTarget("TASS"), digests.RefreshCalls()[0].Target)
		assert.Empty(t, digests.LatestCalls())
	})

	t.Run("not cached", func(t *testing.T) {
		digests := newDigests(false)
		srv := New(Params{Config: testConfig(), Registry: testRegistry(), Digests: digests})

		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/digest/war", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, digests.RefreshCalls(), 1)
		assert.Equal(t, domain.CategoryTarget(domain.CategoryWar), digests.RefreshCalls()[0].Target)
	})

	t.Run("unknown target", func(t *testing.T) {
		digests := newDigests(true)
		srv := New(Params{Config: testConfig(), Registry: testRegistry(), Digests: digests})

		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/digest/bbc", http.NoBody))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), `unknown target \"bbc\"`)
		assert.Empty(t, digests.RefreshCalls())
	})

	t.Run("text", func(t *testing.T) {
		digests := newDigests(true)
		srv := New(Params{Config: testConfig(), Registry: testRegistry(), Digests: digests})

		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/digest/global/text", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, "<b>🖤 Global News Feed</b>\n\n"+globalResult().Content+
			"\n───────────────────\n✅ 1 sources | ❌ 1 failed", w.Body.String())
	})
}

func TestServer_rss(t *testing.T) {
	digests := &mocks.DigestsMock{
		LatestFunc: func(target domain.Target) (scheduler.Digest, bool) {
			return scheduler.Digest{Target: target, Result: globalResult(), UpdatedAt: time.Now()}, true
		},
	}
	srv := New(Params{Config: testConfig(), Registry: testRegistry(), Digests: digests, BaseURL: "http://logos.example.com/"})

	t.Run("category feed", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/rss/global", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/rss+xml; charset=utf-8", w.Header().Get("Content-Type"))
		body := w.Body.String()
		assert.Contains(t, body, "<title>Logos - 🖤 Global News Feed</title>")
		assert.Contains(t, body, "<title>Talks resume</title>")
		assert.Contains(t, body, `href="http://logos.example.com/rss/global"`)
		assert.NotContains(t, body, "Kommersant", "failed sources skipped")
	})

	t.Run("unknown target", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/rss/sports", http.NoBody))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
