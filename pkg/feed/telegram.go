package feed

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/umputun/logos/pkg/content"
	"github.com/umputun/logos/pkg/domain"
)

// selectors of the public channel web mirror (t.me/s/<channel>)
const (
	tgMessageWrap = ".tgme_widget_message_wrap"
	tgMessageText = ".tgme_widget_message_text"
	tgMessageDate = ".tgme_widget_message_date"
)

// TelegramParser extracts posts from the public web mirror of a telegram channel
type TelegramParser struct {
	maxItems int
	junk     JunkChecker
}

// NewTelegramParser makes telegram mirror parser returning at most maxItems items
func NewTelegramParser(maxItems int, junk JunkChecker) *TelegramParser {
	return &TelegramParser{maxItems: maxItems, junk: junk}
}

// Parse scans message wrappers from the bottom of the page (newest) up, collecting qualifying
// posts until maxItems are found, then reverses them to oldest-first order.
// A trailing run of junk posts is skipped, not treated as the end of the feed.
func (p *TelegramParser) Parse(src domain.Source, body []byte) ([]domain.NewsItem, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, domain.NewFetchError(domain.KindParseFailure, src.Name, fmt.Errorf("parse html: %w", err))
	}

	wraps := doc.Find(tgMessageWrap)
	res := make([]domain.NewsItem, 0, p.maxItems)
	for i := wraps.Length() - 1; i >= 0 && len(res) < p.maxItems; i-- {
		wrap := wraps.Eq(i)

		textSel := wrap.Find(tgMessageText).First()
		if textSel.Length() == 0 {
			continue // media-only post
		}
		text := content.Clean(nodeText(textSel.Get(0)))
		if text == "" || p.junk.IsJunk(text) {
			continue
		}

		item := domain.NewsItem{Title: text, TimeLabel: NoTimeLabel}
		if date := wrap.Find(tgMessageDate).First(); date.Length() > 0 {
			item.Link, _ = date.Attr("href")
			if label := strings.TrimSpace(date.Text()); label != "" {
				item.TimeLabel = label
			}
		}
		res = append(res, item)
	}

	if len(res) == 0 {
		return nil, domain.NewFetchError(domain.KindEmpty, src.Name,
			fmt.Errorf("no qualifying posts in %d messages", wraps.Length()))
	}
	slices.Reverse(res)
	return res, nil
}

// nodeText collects text of the node and its children, <br> becomes a line break
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			sb.WriteString(n.Data)
		case n.Type == html.ElementNode && n.Data == "br":
			sb.WriteString("\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
