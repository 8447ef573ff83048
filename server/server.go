// Package server is the HTTP front end: status, source registry, source health, digests and RSS of targets
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/logos/pkg/domain"
	"github.com/umputun/logos/pkg/feed"
	"github.com/umputun/logos/pkg/scheduler"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/registry.go -pkg mocks -skip-ensure -fmt goimports . Registry
//go:generate moq -out mocks/digests.go -pkg mocks -skip-ensure -fmt goimports . Digests
//go:generate moq -out mocks/health_store.go -pkg mocks -skip-ensure -fmt goimports . HealthStore

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// Registry is the source table
type Registry interface {
	Find(name string) (domain.Source, bool)
	ByCategory(c domain.Category) []domain.Source
	All() []domain.Source
}

// Digests keeps the latest digest per target and builds new ones on demand
type Digests interface {
	Latest(target domain.Target) (scheduler.Digest, bool)
	Refresh(ctx context.Context, target domain.Target) scheduler.Digest
}

// HealthStore lists per-source fetch history
type HealthStore interface {
	List(ctx context.Context) ([]domain.SourceHealth, error)
}

// Params configures Server
type Params struct {
	Config   ConfigProvider
	Registry Registry
	Digests  Digests
	Health   HealthStore   // optional
	BaseURL  string        // used for links in RSS
	MaxAge   time.Duration // cached digest older than this is rebuilt, zero keeps it until refreshed
	Version  string
	Debug    bool
}

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	registry  Registry
	digests   Digests
	health    HealthStore
	generator *feed.Generator
	maxAge    time.Duration
	version   string
	debug     bool
	now       func() time.Time

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// New initializes a new server instance
func New(p Params) *Server {
	s := &Server{
		config:    p.Config,
		registry:  p.Registry,
		digests:   p.Digests,
		health:    p.Health,
		generator: feed.NewGenerator(p.BaseURL),
		maxAge:    p.MaxAge,
		version:   p.Version,
		debug:     p.Debug,
		now:       time.Now,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      timeout,
		IdleTimeout:       timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("logos", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /sources", s.sourcesHandler)
		r.HandleFunc("GET /health", s.healthHandler)
		r.HandleFunc("GET /digest/{target}", s.digestHandler)
		r.HandleFunc("GET /digest/{target}/text", s.digestTextHandler)
	})

	s.router.HandleFunc("GET /rss/{target}", s.rssHandler)
}
