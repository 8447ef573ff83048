package domain

import (
	"fmt"
	"strings"
)

// NewsItem is one normalized, junk-filtered unit of content extracted from a source.
// Title is never empty for items returned by parsers.
type NewsItem struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
	TimeLabel   string `json:"time"` // display only, never parsed back
}

// Target is a fetch target, either a whole category or a single source by name
type Target struct {
	Category Category
	Source   string
}

// CategoryTarget makes target for all sources of the category
func CategoryTarget(c Category) Target { return Target{Category: c} }

// SourceTarget makes target for a single source
func SourceTarget(name string) Target { return Target{Source: name} }

// DisplayName returns decorated name used in digest header
func (t Target) DisplayName() string {
	if t.Source != "" {
		return "📰 " + t.Source
	}
	return t.Category.DisplayName()
}

// Key returns lowercase identifier of the target, used for routing and caching
func (t Target) Key() string {
	if t.Source != "" {
		return strings.ToLower(t.Source)
	}
	return string(t.Category)
}

func (t Target) String() string {
	if t.Source != "" {
		return fmt.Sprintf("source:%s", t.Source)
	}
	return fmt.Sprintf("category:%s", t.Category)
}

// SourceResult is the outcome of fetching one source inside an aggregation
type SourceResult struct {
	Source Source     `json:"source"`
	Items  []NewsItem `json:"items,omitempty"`
	Err    error      `json:"-"`
	Error  string     `json:"error,omitempty"`
}

// AggregatedResult is built once per user-triggered fetch and discarded after delivery
type AggregatedResult struct {
	Header       string         `json:"header"`
	Content      string         `json:"content"`
	SuccessCount int            `json:"success_count"`
	ErrorCount   int            `json:"error_count"`
	Sources      []SourceResult `json:"sources,omitempty"`
}
