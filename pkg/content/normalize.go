package content

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// Ellipsis is appended to truncated text
const Ellipsis = "..."

var (
	brRe = regexp.MustCompile(`(?i)<br\s*/?>`)

	// only this fixed set is decoded by Clean, anything else is left as is
	entityReplacer = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
	)

	strictPolicy = bluemonday.StrictPolicy()
)

// Clean normalizes raw text: decodes common entities, converts <br> to line breaks,
// collapses whitespace inside lines and drops empty lines.
func Clean(raw string) string {
	text := brRe.ReplaceAllString(raw, "\n")
	text = entityReplacer.Replace(text)

	lines := strings.Split(text, "\n")
	res := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		res = append(res, line)
	}
	return strings.Join(res, "\n")
}

// Truncate cuts text to maxChars characters (runes, not bytes) and appends Ellipsis.
// Text within the budget is returned unchanged.
func Truncate(text string, maxChars int) string {
	if maxChars < 0 {
		maxChars = 0
	}
	if utf8.RuneCountInString(text) <= maxChars {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxChars]) + Ellipsis
}

// StripHTML removes all markup from raw html fragment, keeping line breaks from <br>.
// The result is plain text ready for Clean.
func StripHTML(raw string) string {
	text := brRe.ReplaceAllString(raw, "\n")
	text = strictPolicy.Sanitize(text)
	return html.UnescapeString(text)
}
