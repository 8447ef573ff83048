package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/umputun/logos/pkg/aggregator"
	"github.com/umputun/logos/pkg/digest"
	"github.com/umputun/logos/pkg/domain"
	"github.com/umputun/logos/pkg/scheduler"
)

var errUnknownTarget = errors.New("unknown target")

// digestResponse is a digest of a target with the rendered message chunks
type digestResponse struct {
	Target       string                `json:"target"`
	Header       string                `json:"header"`
	SuccessCount int                   `json:"success_count"`
	ErrorCount   int                   `json:"error_count"`
	Sources      []domain.SourceResult `json:"sources,omitempty"`
	Messages     []string              `json:"messages"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, _ *http.Request) {
	rest.RenderJSON(w, rest.JSON{
		"status":  "ok",
		"version": s.version,
		"time":    s.now().UTC(),
		"sources": len(s.registry.All()),
	})
}

// sourcesHandler returns the source registry
func (s *Server) sourcesHandler(w http.ResponseWriter, _ *http.Request) {
	rest.RenderJSON(w, s.registry.All())
}

// healthHandler returns fetch history of sources
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if s.health == nil {
		rest.RenderJSON(w, []domain.SourceHealth{})
		return
	}
	res, err := s.health.List(r.Context())
	if err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusInternalServerError, err, "can't list source health")
		return
	}
	if res == nil {
		res = []domain.SourceHealth{}
	}
	rest.RenderJSON(w, res)
}

// digestHandler returns digest of a category or a single source as JSON
func (s *Server) digestHandler(w http.ResponseWriter, r *http.Request) {
	d, err := s.digestFor(r)
	if err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusNotFound, err, err.Error())
		return
	}
	rest.RenderJSON(w, digestResponse{
		Target:       d.Target.Key(),
		Header:       d.Result.Header,
		SuccessCount: d.Result.SuccessCount,
		ErrorCount:   d.Result.ErrorCount,
		Sources:      d.Result.Sources,
		Messages:     digest.Split(digest.Render(d.Result), digest.MaxMessageLen),
		UpdatedAt:    d.UpdatedAt,
	})
}

// digestTextHandler returns the rendered digest message as is
func (s *Server) digestTextHandler(w http.ResponseWriter, r *http.Request) {
	d, err := s.digestFor(r)
	if err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusNotFound, err, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(digest.Render(d.Result))); err != nil {
		lgr.Printf("[WARN] failed to write digest: %v", err)
	}
}

// rssHandler serves RSS feed of a target
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	d, err := s.digestFor(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	rss, err := s.generator.GenerateRSS(d.Result, d.Target)
	if err != nil {
		lgr.Printf("[ERROR] failed to generate RSS feed for %s: %v", d.Target, err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		lgr.Printf("[WARN] failed to write RSS response: %v", err)
	}
}

// digestFor resolves {target} path value and returns cached digest, rebuilding it when missing,
// stale or requested with refresh=true
func (s *Server) digestFor(r *http.Request) (scheduler.Digest, error) {
	name := r.PathValue("target")
	target, ok := aggregator.ResolveCommand(name, s.registry)
	if !ok {
		return scheduler.Digest{}, fmt.Errorf("%w %q", errUnknownTarget, name)
	}

	if r.URL.Query().Get("refresh") != "true" {
		if d, ok := s.digests.Latest(target); ok && (s.maxAge <= 0 || s.now().Sub(d.UpdatedAt) <= s.maxAge) {
			return d, nil
		}
	}
	return s.digests.Refresh(r.Context(), target), nil
}
