package feed

import (
	"bytes"
	"fmt"
	"slices"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/logos/pkg/content"
	"github.com/umputun/logos/pkg/domain"
)

// NoTimeLabel is shown when an item has no usable time
const NoTimeLabel = "--:--"

// JunkChecker decides whether a text is noise
type JunkChecker interface {
	IsJunk(text string) bool
}

// RSSParser parses RSS/Atom feeds into news items, oldest first
type RSSParser struct {
	maxItems int
	junk     JunkChecker
	location *time.Location
}

// NewRSSParser makes RSS parser returning at most maxItems items
func NewRSSParser(maxItems int, junk JunkChecker) *RSSParser {
	return &RSSParser{maxItems: maxItems, junk: junk, location: time.Local}
}

// Parse parses feed body. Entries are taken in feed order (newest first) until maxItems
// qualifying ones are found, then reversed.
func (p *RSSParser) Parse(src domain.Source, body []byte) ([]domain.NewsItem, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, domain.NewFetchError(domain.KindParseFailure, src.Name, fmt.Errorf("parse feed: %w", err))
	}

	res := make([]domain.NewsItem, 0, p.maxItems)
	for _, entry := range feed.Items {
		if len(res) >= p.maxItems {
			break
		}
		title := content.Clean(content.StripHTML(entry.Title))
		if title == "" || p.junk.IsJunk(title) {
			continue
		}
		res = append(res, domain.NewsItem{
			Title:     title,
			Link:      entryLink(entry),
			TimeLabel: p.timeLabel(entry),
		})
	}

	if len(res) == 0 {
		return nil, domain.NewFetchError(domain.KindEmpty, src.Name, nil)
	}
	slices.Reverse(res)
	return res, nil
}

func (p *RSSParser) timeLabel(entry *gofeed.Item) string {
	switch {
	case entry.PublishedParsed != nil:
		return entry.PublishedParsed.In(p.location).Format("15:04")
	case entry.UpdatedParsed != nil:
		return entry.UpdatedParsed.In(p.location).Format("15:04")
	default:
		return NoTimeLabel
	}
}

// entryLink returns the first available link of the entry
func entryLink(entry *gofeed.Item) string {
	if entry.Link != "" {
		return entry.Link
	}
	for _, l := range entry.Links {
		if l != "" {
			return l
		}
	}
	return ""
}
