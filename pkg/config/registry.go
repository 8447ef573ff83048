package config

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/umputun/logos/pkg/domain"
)

//go:embed sources.yml
var defaultSources []byte

// DefaultSources returns the built-in source registry
func DefaultSources() ([]domain.Source, error) {
	var res []domain.Source
	if err := yaml.Unmarshal(defaultSources, &res); err != nil {
		return nil, fmt.Errorf("parse default sources: %w", err)
	}
	return res, nil
}

// Registry is the read-only source table, built once at startup and safe for concurrent reads
type Registry struct {
	sources []domain.Source
	byName  map[string]int
}

// NewRegistry validates sources and makes registry keeping their order
func NewRegistry(sources []domain.Source) (*Registry, error) {
	res := &Registry{sources: make([]domain.Source, 0, len(sources)), byName: make(map[string]int, len(sources))}
	for i, src := range sources {
		norm, err := verifySource(src)
		if err != nil {
			return nil, fmt.Errorf("source #%d: %w", i+1, err)
		}
		key := strings.ToLower(norm.Name)
		if _, dup := res.byName[key]; dup {
			return nil, fmt.Errorf("duplicate source name %q", norm.Name)
		}
		res.byName[key] = len(res.sources)
		res.sources = append(res.sources, norm)
	}
	return res, nil
}

// Find returns source by name, case-insensitive
func (r *Registry) Find(name string) (domain.Source, bool) {
	idx, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return domain.Source{}, false
	}
	return r.sources[idx], true
}

// ByCategory returns sources of the category in registry order
func (r *Registry) ByCategory(c domain.Category) []domain.Source {
	var res []domain.Source
	for _, src := range r.sources {
		if src.Category == c {
			res = append(res, src)
		}
	}
	return res
}

// All returns a copy of all sources in registry order
func (r *Registry) All() []domain.Source {
	res := make([]domain.Source, len(r.sources))
	copy(res, r.sources)
	return res
}

// Target resolves a category or source name to a fetch target
func (r *Registry) Target(name string) (domain.Target, bool) {
	if c, err := domain.ParseCategory(name); err == nil {
		return domain.CategoryTarget(c), true
	}
	if src, ok := r.Find(name); ok {
		return domain.SourceTarget(src.Name), true
	}
	return domain.Target{}, false
}
