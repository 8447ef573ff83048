// Package digest renders aggregated news into telegram-style HTML messages
package digest

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/umputun/logos/pkg/content"
	"github.com/umputun/logos/pkg/domain"
)

// MaxMessageLen is the chunk size for message delivery, in bytes
const MaxMessageLen = 4000

// NoSourcesContent is the content of a target without sources
const NoSourcesContent = "❌ No sources found"

const summaryRule = "───────────────────"

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

var attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// Formatter renders source blocks, titles are truncated to maxText characters
type Formatter struct {
	maxText int
}

// NewFormatter makes formatter, non-positive maxText means 280
func NewFormatter(maxText int) *Formatter {
	if maxText <= 0 {
		maxText = 280
	}
	return &Formatter{maxText: maxText}
}

// FormatItems renders a source block with one entry per item
func (f *Formatter) FormatItems(src domain.Source, items []domain.NewsItem) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🏴 <b>%s</b>\n", htmlEscaper.Replace(src.Name))
	for _, item := range items {
		fmt.Fprintf(&sb, "\n▪️ %s\n", htmlEscaper.Replace(content.Truncate(item.Title, f.maxText)))
		fmt.Fprintf(&sb, "   └ 🕷 <code>%s</code>", htmlEscaper.Replace(item.TimeLabel))
		if item.Link != "" {
			fmt.Fprintf(&sb, `  ⛓️ <a href="%s">Link</a>`, attrEscaper.Replace(item.Link))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatError renders a failed source line
func (f *Formatter) FormatError(src domain.Source, err error) string {
	return fmt.Sprintf("🕸 <b>%s</b>: %s\n", htmlEscaper.Replace(src.Name), htmlEscaper.Replace(err.Error()))
}

// Header returns digest header of the target
func Header(t domain.Target) string {
	return t.DisplayName() + " News Feed"
}

// Summary returns the closing line with success and failure counts
func Summary(successCount, errorCount int) string {
	return fmt.Sprintf("\n%s\n✅ %d sources | ❌ %d failed", summaryRule, successCount, errorCount)
}

// Render makes the full message: bold header, content and summary
func Render(r domain.AggregatedResult) string {
	return fmt.Sprintf("<b>%s</b>\n\n%s%s", htmlEscaper.Replace(r.Header), r.Content, Summary(r.SuccessCount, r.ErrorCount))
}

// Split cuts text into chunks of at most maxLen bytes, never inside a UTF-8 character.
// A chunk ends after the last newline within the limit when there is one.
func Split(text string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = MaxMessageLen
	}
	var res []string
	for start := 0; start < len(text); {
		end := start + maxLen
		if end >= len(text) {
			res = append(res, text[start:])
			break
		}
		for end > start && !utf8.RuneStart(text[end]) {
			end--
		}
		if end == start { // maxLen smaller than one rune
			_, size := utf8.DecodeRuneInString(text[start:])
			end = start + size
		}
		if nl := strings.LastIndexByte(text[start:end], '\n'); nl >= 0 {
			end = start + nl + 1
		}
		res = append(res, text[start:end])
		start = end
	}
	return res
}

// Help builds the help message listing category and source commands
func Help(sources []domain.Source) string {
	var sb strings.Builder
	sb.WriteString("📰 <b>LOGOS News Aggregator</b>\n\n<b>Category Commands:</b>\n")
	for _, c := range domain.Categories() {
		names := make([]string, 0, 4)
		for _, s := range sources {
			if s.Category == c {
				names = append(names, htmlEscaper.Replace(s.Name))
			}
		}
		if len(names) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "/%s — %s (%s)\n", c, c.DisplayName(), strings.Join(names, ", "))
	}

	sb.WriteString("\n<b>Individual Source Commands:</b>\n")
	for _, c := range domain.Categories() {
		cmds := make([]string, 0, 4)
		for _, s := range sources {
			if s.Category == c {
				cmds = append(cmds, "<code>/"+htmlEscaper.Replace(strings.ToLower(s.Name))+"</code>")
			}
		}
		if len(cmds) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "%s %s\n", c.DisplayName(), strings.Join(cmds, " "))
	}
	sb.WriteString("\n<b>Other:</b>\n/start, /help — Show this message")
	return sb.String()
}
