package content

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultSystemMessages are platform service posts, never news
var DefaultSystemMessages = []string{
	"channel created",
	"account created",
	"channel photo updated",
	"channel name was changed",
	"канал создан",
}

// DefaultOffTopicKeywords is a content-policy list, sports and entertainment are not part of the digest
var DefaultOffTopicKeywords = []string{
	"football", "soccer", "premier league", "champions league", "world cup",
	"basketball", "hockey", "tennis", "olympic", "formula 1", "boxing",
	"celebrity", "oscars", "grammy", "box office", "horoscope",
	"футбол", "хоккей", "баскетбол", "теннис", "олимпиад", "чемпионат мира по",
	"сериал", "шоу-бизнес", "гороскоп",
}

// DefaultLinkMarkers identify short-video link posts
var DefaultLinkMarkers = []string{"youtu.be/", "youtube.com/shorts", "tiktok.com/", "instagram.com/reel"}

const defaultMaxLinkPostLen = 80

// JunkOptions configures JunkFilter, empty lists fall back to defaults
type JunkOptions struct {
	SystemMessages  []string
	Keywords        []string
	LinkMarkers     []string
	MaxLinkPostLen  int
	DisableKeywords bool
}

// JunkFilter is a pure predicate deciding whether a text is noise. It has no state
// besides its lists and is safe for concurrent use.
type JunkFilter struct {
	systemMessages []string
	keywords       []string
	linkMarkers    []string
	maxLinkPostLen int
}

// NewJunkFilter makes JunkFilter with given options
func NewJunkFilter(opts JunkOptions) *JunkFilter {
	res := &JunkFilter{
		systemMessages: lowerNonEmpty(opts.SystemMessages),
		keywords:       lowerNonEmpty(opts.Keywords),
		linkMarkers:    lowerNonEmpty(opts.LinkMarkers),
		maxLinkPostLen: opts.MaxLinkPostLen,
	}
	if len(res.systemMessages) == 0 {
		res.systemMessages = lowerNonEmpty(DefaultSystemMessages)
	}
	if len(res.keywords) == 0 && !opts.DisableKeywords {
		res.keywords = lowerNonEmpty(DefaultOffTopicKeywords)
	}
	if len(res.linkMarkers) == 0 {
		res.linkMarkers = lowerNonEmpty(DefaultLinkMarkers)
	}
	if res.maxLinkPostLen <= 0 {
		res.maxLinkPostLen = defaultMaxLinkPostLen
	}
	return res
}

// IsJunk reports whether text is a system message, off-topic or a bare link
func (f *JunkFilter) IsJunk(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return false
	}

	if containsAny(lower, f.systemMessages) || containsAny(lower, f.keywords) {
		return true
	}

	// bare link without any words around it
	if strings.HasPrefix(lower, "http") && !strings.ContainsFunc(lower, unicode.IsSpace) {
		return true
	}

	return containsAny(lower, f.linkMarkers) && utf8.RuneCountInString(lower) < f.maxLinkPostLen
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func lowerNonEmpty(vals []string) []string {
	res := make([]string, 0, len(vals))
	for _, v := range vals {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			res = append(res, v)
		}
	}
	return res
}
