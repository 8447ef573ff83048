package translate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/logos/pkg/translate/mocks"
)

func TestBestEffort_Translate(t *testing.T) {
	t.Run("translated", func(t *testing.T) {
		p := &mocks.ProviderMock{TranslateFunc: func(ctx context.Context, text, lang string) (string, error) {
			return "[" + lang + "] " + text, nil
		}}
		assert.Equal(t, "[ru] hello", NewBestEffort(p).Translate(context.Background(), "hello", "ru"))
		require.Len(t, p.TranslateCalls(), 1)
		assert.Equal(t, "hello", p.TranslateCalls()[0].Text)
	})

	t.Run("failure keeps original", func(t *testing.T) {
		p := &mocks.ProviderMock{TranslateFunc: func(ctx context.Context, text, lang string) (string, error) {
			return "", errors.New("boom")
		}}
		assert.Equal(t, "hello", NewBestEffort(p).Translate(context.Background(), "hello", "ru"))
	})

	t.Run("blank result keeps original", func(t *testing.T) {
		p := &mocks.ProviderMock{TranslateFunc: func(ctx context.Context, text, lang string) (string, error) {
			return "  ", nil
		}}
		assert.Equal(t, "hello", NewBestEffort(p).Translate(context.Background(), "hello", "ru"))
	})

	t.Run("empty text and nil provider skip the call", func(t *testing.T) {
		p := &mocks.ProviderMock{TranslateFunc: func(ctx context.Context, text, lang string) (string, error) {
			return "x", nil
		}}
		assert.Equal(t, " ", NewBestEffort(p).Translate(context.Background(), " ", "ru"))
		assert.Equal(t, "hello", NewBestEffort(p).Translate(context.Background(), "hello", ""))
		assert.Empty(t, p.TranslateCalls())
		assert.Equal(t, "hello", NewBestEffort(nil).Translate(context.Background(), "hello", "ru"))
	})
}

func TestGoogle_Translate(t *testing.T) {
	t.Run("sentences joined", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "gtx", q.Get("client"))
			assert.Equal(t, "auto", q.Get("sl"))
			assert.Equal(t, "ru", q.Get("tl"))
			assert.Equal(t, "t", q.Get("dt"))
			assert.Equal(t, "Hello world. Bye & see you", q.Get("q"))
			assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte(`[[["Привет, мир. ","Hello world. ",null,null,10],["Пока","Bye & see you",null,null,10]],null,"en"]`))
		}))
		defer server.Close()

		g := NewGoogle(&http.Client{}, server.URL, "test-agent")
		res, err := g.Translate(context.Background(), "Hello world. Bye & see you", "ru")
		require.NoError(t, err)
		assert.Equal(t, "Привет, мир. Пока", res)
	})

	t.Run("failing endpoint falls back to original through best effort", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		g := NewGoogle(&http.Client{}, server.URL, "")
		_, err := g.Translate(context.Background(), "Oil prices rose", "ru")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
		assert.Equal(t, "Oil prices rose", NewBestEffort(g).Translate(context.Background(), "Oil prices rose", "ru"))
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		g := NewGoogle(&http.Client{}, url, "")
		assert.Equal(t, "text", NewBestEffort(g).Translate(context.Background(), "text", "ru"))
	})
}

func TestParseGoogleResponse(t *testing.T) {
	tbl := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{name: "single", body: `[[["Привет","Hello",null,null,1]],null,"en"]`, want: "Привет"},
		{name: "skips non-text parts", body: `[[["a","x"],[null,null,"translit"],["b","y"]]]`, want: "ab"},
		{name: "not json", body: `<html>`, wantErr: true},
		{name: "empty array", body: `[]`, wantErr: true},
		{name: "wrong shape", body: `[null]`, wantErr: true},
		{name: "no text", body: `[[[null]]]`, wantErr: true},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			res, err := parseGoogleResponse([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, res)
		})
	}
}

func TestOpenAI_Translate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Contains(t, req.Messages[0].Content, `"ru"`)
		assert.Equal(t, "Gold hits record", req.Messages[1].Content)

		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: "  Золото обновило рекорд\n"}}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	o := NewOpenAI(OpenAIConfig{APIKey: "test-key", Endpoint: server.URL + "/v1", Model: "test-model"})
	res, err := o.Translate(context.Background(), "Gold hits record", "ru")
	require.NoError(t, err)
	assert.Equal(t, "Золото обновило рекорд", res)

	t.Run("no choices", func(t *testing.T) {
		empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer empty.Close()
		o := NewOpenAI(OpenAIConfig{APIKey: "k", Endpoint: empty.URL + "/v1"})
		_, err := o.Translate(context.Background(), "x", "ru")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no response from llm")
	})

	t.Run("shared client", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "logos-test", r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
		}))
		defer srv.Close()

		rt := &uaTransport{ua: "logos-test", next: http.DefaultTransport}
		o := NewOpenAI(OpenAIConfig{APIKey: "k", Endpoint: srv.URL + "/v1", Client: &http.Client{Transport: rt}})
		res, err := o.Translate(context.Background(), "x", "ru")
		require.NoError(t, err)
		assert.Equal(t, "ok", res)
		assert.Equal(t, 1, rt.calls)
	})
}

type uaTransport struct {
	ua    string
	next  http.RoundTripper
	calls int
}

func (u *uaTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	u.calls++
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", u.ua)
	return u.next.RoundTrip(req)
}
