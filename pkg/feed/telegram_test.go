package feed

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/logos/pkg/content"
	"github.com/umputun/logos/pkg/domain"
)

func tgMessage(id int, text, clock string) string {
	date := ""
	if clock != "" {
		date = fmt.Sprintf(`<a class="tgme_widget_message_date" href="https://t.me/chan/%d"><time datetime="2024-01-02T%s:00+00:00" class="time">%s</time></a>`,
			id, clock, clock)
	}
	textDiv := ""
	if text != "" {
		textDiv = fmt.Sprintf(`<div class="tgme_widget_message_text js-message_text" dir="auto">%s</div>`, text)
	}
	return fmt.Sprintf(`<div class="tgme_widget_message_wrap js-widget_message_wrap"><div class="tgme_widget_message" data-post="chan/%d">%s<div class="tgme_widget_message_footer">%s</div></div></div>`,
		id, textDiv, date)
}

func tgPage(messages ...string) []byte {
	return []byte(`<!DOCTYPE html><html><head><title>chan</title></head><body><section class="tgme_channel_history">` +
		strings.Join(messages, "\n") + `</section></body></html>`)
}

func TestTelegramParser_Parse(t *testing.T) {
	src := domain.Source{Name: "TASS", Type: domain.SourceTelegram, Category: domain.CategoryWar, Language: "ru"}
	junk := content.NewJunkFilter(content.JunkOptions{})

	t.Run("newest first scan skips junk and reverses", func(t *testing.T) {
		page := tgPage(
			tgMessage(1, "Channel created", "09:00"),
			tgMessage(2, "https://t.me/other/55", "09:10"),
			tgMessage(3, "item1", "10:00"),
			tgMessage(4, "item2", "11:00"),
			tgMessage(5, "item3", "12:00"),
		)
		items, err := NewTelegramParser(2, junk).Parse(src, page)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, domain.NewsItem{Title: "item2", Link: "https://t.me/chan/4", TimeLabel: "11:00"}, items[0])
		assert.Equal(t, domain.NewsItem{Title: "item3", Link: "https://t.me/chan/5", TimeLabel: "12:00"}, items[1])
	})

	t.Run("trailing junk does not stop the scan", func(t *testing.T) {
		page := tgPage(
			tgMessage(1, "first real news", "08:00"),
			tgMessage(2, "second real news", "08:30"),
			tgMessage(3, "Channel photo updated", "09:00"),
			tgMessage(4, "watch youtu.be/xyz", "09:30"),
			tgMessage(5, "https://example.com/x", "10:00"),
		)
		items, err := NewTelegramParser(5, junk).Parse(src, page)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "first real news", items[0].Title)
		assert.Equal(t, "second real news", items[1].Title)
	})

	t.Run("br and entities in text", func(t *testing.T) {
		page := tgPage(tgMessage(7, `<b>Breaking:</b> talks&nbsp;resume<br/>  second   line <a href="https://x.y">link</a>`, "13:45"))
		items, err := NewTelegramParser(5, junk).Parse(src, page)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Breaking: talks resume\nsecond line link", items[0].Title)
	})

	t.Run("media-only posts skipped and missing date defaults", func(t *testing.T) {
		page := tgPage(
			tgMessage(1, "text without date", ""),
			tgMessage(2, "", "10:00"),
		)
		items, err := NewTelegramParser(5, junk).Parse(src, page)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, domain.NewsItem{Title: "text without date", TimeLabel: NoTimeLabel}, items[0])
	})

	t.Run("all junk is empty", func(t *testing.T) {
		page := tgPage(tgMessage(1, "Channel created", "09:00"), tgMessage(2, "football tonight", "09:05"))
		_, err := NewTelegramParser(5, junk).Parse(src, page)
		require.Error(t, err)
		assert.Equal(t, domain.KindEmpty, domain.KindOf(err))
		assert.Contains(t, err.Error(), "2 messages")
	})

	t.Run("page without messages is empty", func(t *testing.T) {
		_, err := NewTelegramParser(5, junk).Parse(src, []byte("<html><body>Please open Telegram to view this post</body></html>"))
		require.Error(t, err)
		assert.Equal(t, domain.KindEmpty, domain.KindOf(err))
		assert.Contains(t, err.Error(), "0 messages")
	})
}
