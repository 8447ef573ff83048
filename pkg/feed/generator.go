package feed

import (
	"crypto/sha1" //nolint:gosec // guid hash, not security
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/logos/pkg/domain"
)

// Generator creates RSS feeds from aggregated digests
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// GenerateRSS creates an RSS 2.0 feed from the aggregated result of a target.
// Failed sources are skipped, items keep digest order.
func (g *Generator) GenerateRSS(result domain.AggregatedResult, target domain.Target) (string, error) {
	self := fmt.Sprintf("%s/rss/%s", g.baseURL, target.Key())

	items := make([]digestItem, 0, len(result.Sources)*5)
	for _, sr := range result.Sources {
		if sr.Err != nil || sr.Error != "" {
			continue
		}
		for _, item := range sr.Items {
			items = append(items, toDigestItem(sr.Source, item))
		}
	}

	feed := digestFeed{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: digestChannel{
			Title:         "Logos - " + result.Header,
			Link:          g.baseURL + "/",
			Description:   fmt.Sprintf("%d sources, %d failed", result.SuccessCount, result.ErrorCount),
			Category:      target.Key(),
			Generator:     "logos",
			SelfLink:      selfLink{Href: self, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().Format(time.RFC1123Z),
			Items:         items,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	return xml.Header + string(output), nil
}

// toDigestItem converts a news item of the source to an RSS item
func toDigestItem(src domain.Source, item domain.NewsItem) digestItem {
	desc := item.Description
	if item.TimeLabel != "" {
		desc = strings.TrimSpace(fmt.Sprintf("[%s] %s", item.TimeLabel, desc))
	}

	return digestItem{
		Title:       item.Title,
		Link:        item.Link,
		GUID:        guidOf(src, item),
		Description: desc,
		Category:    string(src.Category),
		Source:      itemSource{URL: src.URL, Name: src.Name},
	}
}

// guidOf is the item link as a permalink, or a hash of source and title for items without own link
func guidOf(src domain.Source, item domain.NewsItem) itemGUID {
	if item.Link != "" && item.Link != src.URL {
		return itemGUID{IsPermaLink: true, Value: item.Link}
	}
	h := sha1.Sum([]byte(src.Name + "\n" + item.Title)) //nolint:gosec // not security
	return itemGUID{Value: hex.EncodeToString(h[:])}
}
