package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/umputun/logos/pkg/domain"
)

// verifySource checks a registry entry and returns it with normalized type, category and language
func verifySource(src domain.Source) (domain.Source, error) {
	src.Name = strings.TrimSpace(src.Name)
	if src.Name == "" {
		return src, fmt.Errorf("name is required")
	}
	if strings.ContainsAny(src.Name, " /@") {
		return src, fmt.Errorf("source %q: name can't contain spaces, '/' or '@'", src.Name)
	}
	if _, err := domain.ParseCategory(src.Name); err == nil {
		return src, fmt.Errorf("source %q: name clashes with a category", src.Name)
	}

	st, err := domain.ParseSourceType(string(src.Type))
	if err != nil {
		return src, fmt.Errorf("source %q: %w", src.Name, err)
	}
	src.Type = st

	cat, err := domain.ParseCategory(string(src.Category))
	if err != nil {
		return src, fmt.Errorf("source %q: %w", src.Name, err)
	}
	src.Category = cat

	src.Language = strings.ToLower(strings.TrimSpace(src.Language))
	if !isLangCode(src.Language) {
		return src, fmt.Errorf("source %q: language must be a two-letter code, got %q", src.Name, src.Language)
	}

	src.URL = strings.TrimSpace(src.URL)
	u, err := url.Parse(src.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return src, fmt.Errorf("source %q: invalid url %q", src.Name, src.URL)
	}
	return src, nil
}

func isLangCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
