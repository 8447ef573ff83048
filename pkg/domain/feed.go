package domain

import (
	"fmt"
	"strings"
	"time"
)

// SourceType selects the retrieval and parsing strategy for a source
type SourceType string

// closed set of source types, dispatch over them is a fixed switch
const (
	SourceRSS       SourceType = "rss"
	SourceTelegram  SourceType = "telegram"
	SourceNewsAPI   SourceType = "newsapi"
	SourceHTMLPrice SourceType = "html_price"
)

// ParseSourceType converts config value to SourceType
func ParseSourceType(s string) (SourceType, error) {
	switch st := SourceType(strings.ToLower(strings.TrimSpace(s))); st {
	case SourceRSS, SourceTelegram, SourceNewsAPI, SourceHTMLPrice:
		return st, nil
	default:
		return "", fmt.Errorf("unknown source type %q", s)
	}
}

// Category groups sources fetched together as one batch
type Category string

// known categories, in display order
const (
	CategoryGlobal      Category = "global"
	CategoryWar         Category = "war"
	CategoryMarket      Category = "market"
	CategoryCommodities Category = "commodities"
)

// Categories returns all known categories in display order
func Categories() []Category {
	return []Category{CategoryGlobal, CategoryWar, CategoryMarket, CategoryCommodities}
}

// ParseCategory converts config or command value to Category
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories() {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// DisplayName returns decorated category name used in digest headers
func (c Category) DisplayName() string {
	switch c {
	case CategoryGlobal:
		return "🖤 Global"
	case CategoryWar:
		return "🤍 War"
	case CategoryMarket:
		return "🏴 Market"
	case CategoryCommodities:
		return "💀 Commodities"
	default:
		return string(c)
	}
}

// Source is one configured origin. Sources are defined at startup and never mutated.
type Source struct {
	Name     string     `yaml:"name" json:"name"`
	URL      string     `yaml:"url" json:"url"`
	Type     SourceType `yaml:"type" json:"type"`
	Category Category   `yaml:"category" json:"category"`
	Language string     `yaml:"language" json:"language"` // two-letter code
}

// SourceHealth is the fetch history of a source kept by the repository
type SourceHealth struct {
	Name         string     `json:"name"`
	LastFetched  *time.Time `json:"last_fetched,omitempty"`
	LastSuccess  *time.Time `json:"last_success,omitempty"`
	SuccessCount int        `json:"success_count"`
	ErrorCount   int        `json:"error_count"`
	LastError    string     `json:"last_error,omitempty"`
	LastItems    int        `json:"last_items"`
}
