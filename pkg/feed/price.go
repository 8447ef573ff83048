package feed

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/umputun/logos/pkg/domain"
)

// PricePattern extracts a price literal and an optional percent change from a raw html page.
// Both expressions must have one capture group.
type PricePattern struct {
	Price  *regexp.Regexp
	Change *regexp.Regexp
}

// investing.com instrument page markup, the same for commodities and currency pairs
var investingPattern = PricePattern{
	Price:  regexp.MustCompile(`data-test="instrument-price-last"[^>]*>([^<]+)<`),
	Change: regexp.MustCompile(`data-test="instrument-price-change-percent"[^>]*>(.*?)</span>`),
}

// DefaultPricePatterns are pattern sets of the known price sources, keyed by lowercase source name
var DefaultPricePatterns = map[string]PricePattern{
	"goldspot": investingPattern,
	"brent":    investingPattern,
}

// fallback for unknown sources, schema.org offers markup
var genericPricePattern = PricePattern{
	Price:  regexp.MustCompile(`itemprop="price"[^>]*content="([\d.,]+)"`),
	Change: regexp.MustCompile(`class="[^"]*change-percent[^"]*"[^>]*>([^<]+)<`),
}

var (
	htmlCommentRe = regexp.MustCompile(`(?s)<!--.*?-->`)
	htmlTagRe     = regexp.MustCompile(`<[^>]*>`)
)

// PriceScraper synthesizes a single price item from a raw price page
type PriceScraper struct {
	patterns map[string]PricePattern
	now      func() time.Time
}

// NewPriceScraper makes scraper with default patterns extended or overridden by the given ones
func NewPriceScraper(overrides map[string]PricePattern) *PriceScraper {
	patterns := make(map[string]PricePattern, len(DefaultPricePatterns)+len(overrides))
	for k, v := range DefaultPricePatterns {
		patterns[k] = v
	}
	for k, v := range overrides {
		patterns[strings.ToLower(k)] = v
	}
	return &PriceScraper{patterns: patterns, now: time.Now}
}

// Parse extracts the price and makes "<Name> Price: <price>  (<percent>)" item linking to the page
func (s *PriceScraper) Parse(src domain.Source, body []byte) ([]domain.NewsItem, error) {
	pattern, ok := s.patterns[strings.ToLower(src.Name)]
	if !ok {
		pattern = genericPricePattern
	}

	page := string(body)
	price := matchLiteral(pattern.Price, page)
	if price == "" {
		return nil, domain.NewFetchError(domain.KindParseFailure, src.Name, fmt.Errorf("no price found in %d bytes", len(body)))
	}

	title := fmt.Sprintf("%s Price: %s", src.Name, price)
	if change := strings.Trim(matchLiteral(pattern.Change, page), "() "); change != "" {
		title += fmt.Sprintf("  (%s)", change)
	}

	return []domain.NewsItem{{
		Title:     title,
		Link:      src.URL,
		TimeLabel: s.now().Format("15:04"),
	}}, nil
}

// matchLiteral returns first capture group with markup and whitespace removed
func matchLiteral(re *regexp.Regexp, page string) string {
	if re == nil {
		return ""
	}
	m := re.FindStringSubmatch(page)
	if len(m) < 2 {
		return ""
	}
	res := htmlCommentRe.ReplaceAllString(m[1], "")
	res = htmlTagRe.ReplaceAllString(res, "")
	return strings.Join(strings.Fields(res), "")
}
