package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJunkFilter_IsJunk(t *testing.T) {
	f := NewJunkFilter(JunkOptions{})

	tbl := []struct {
		text string
		junk bool
	}{
		{"Channel created", true},
		{"channel photo updated", true},
		{"Account created", true},
		{"Oil prices rose 2% today", false},
		{"Champions League final moved to Paris", true},
		{"Сборная по футболу проиграла", true},
		{"https://t.me/some_channel/123", true},
		{"  http://example.com/path?a=1  ", true},
		{"https://example.com read this analysis", false},
		{"watch youtu.be/abc123", true},
		{"https://youtube.com/shorts/xyz", true},
		{"Long post discussing the youtu.be/abc video on the front line situation in detail with context", false},
		{"Минобороны сообщило о перехвате беспилотников", false},
		{"", false},
	}

	for _, tt := range tbl {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.junk, f.IsJunk(tt.text))
		})
	}
}

func TestJunkFilter_Pure(t *testing.T) {
	f := NewJunkFilter(JunkOptions{})
	texts := []string{"Channel created", "Oil prices rose 2% today", "https://x.y/z"}
	for _, text := range texts {
		first := f.IsJunk(text)
		for range 100 {
			assert.Equal(t, first, f.IsJunk(text))
		}
	}
}

func TestJunkFilter_Options(t *testing.T) {
	t.Run("custom keywords replace defaults", func(t *testing.T) {
		f := NewJunkFilter(JunkOptions{Keywords: []string{"  Crypto ", ""}})
		assert.True(t, f.IsJunk("crypto pump incoming"))
		assert.False(t, f.IsJunk("football results"))
	})

	t.Run("keywords disabled", func(t *testing.T) {
		f := NewJunkFilter(JunkOptions{DisableKeywords: true})
		assert.False(t, f.IsJunk("football results"))
		assert.True(t, f.IsJunk("Channel created"))
	})

	t.Run("link post threshold", func(t *testing.T) {
		f := NewJunkFilter(JunkOptions{MaxLinkPostLen: 10})
		assert.False(t, f.IsJunk("see tiktok.com/@x"))
	})
}
