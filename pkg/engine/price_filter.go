package engine

import (
	"regexp"
	"strings"

	"github.com/umputun/logos/pkg/domain"
)

// DefaultPriceToken matches a price-shaped token, digits with separators and a currency marker
// either before ($2,654.30) or after (2,654.30 USD) the number
var DefaultPriceToken = regexp.MustCompile(
	`(?i)[$€₽]\s?\d(?:[\d,.]*\d)?|\d(?:[\d,.]*\d)?\s?(?:USD|EUR|RUB|руб|[$€₽])`)

// PriceFilter reduces items of commodities sources to bare price tokens
type PriceFilter struct {
	def       *regexp.Regexp
	perSource map[string]*regexp.Regexp
}

// NewPriceFilter makes filter with DefaultPriceToken and optional per-source patterns keyed by source name
func NewPriceFilter(perSource map[string]*regexp.Regexp) *PriceFilter {
	res := &PriceFilter{def: DefaultPriceToken, perSource: make(map[string]*regexp.Regexp, len(perSource))}
	for k, v := range perSource {
		if v != nil {
			res.perSource[strings.ToLower(k)] = v
		}
	}
	return res
}

// Apply replaces each item title with the first price token found in title and description
// and drops the description. Items without a token are dropped.
func (f *PriceFilter) Apply(source string, items []domain.NewsItem) []domain.NewsItem {
	re, ok := f.perSource[strings.ToLower(source)]
	if !ok {
		re = f.def
	}

	res := make([]domain.NewsItem, 0, len(items))
	for _, item := range items {
		token := strings.TrimSpace(re.FindString(item.Title + "\n" + item.Description))
		if token == "" {
			continue
		}
		item.Title = token
		item.Description = ""
		res = append(res, item)
	}
	return res
}
