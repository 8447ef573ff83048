package engine

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/umputun/logos/pkg/domain"
)

func TestPriceFilter_Apply(t *testing.T) {
	tbl := []struct {
		title, desc string
		want        string
	}{
		{title: "Market update 2,654.30 USD discussion", want: "2,654.30 USD"},
		{title: "Gold at $2,700", want: "$2,700"},
		{title: "Brent 80.5$ today", want: "80.5$"},
		{title: "Нефть стоит 7 100 руб за баррель", want: "100 руб"},
		{title: "цена 6500₽", want: "6500₽"},
		{title: "quiet day", desc: "closing at 1,999.99 eur", want: "1,999.99 eur"},
		{title: "no numbers here", want: ""},
		{title: "up 2% on the week", want: ""},
		{title: "year 2024 was volatile", want: ""},
	}

	f := NewPriceFilter(nil)
	for _, tt := range tbl {
		t.Run(tt.title, func(t *testing.T) {
			res := f.Apply("Gold", []domain.NewsItem{{Title: tt.title, Description: tt.desc, Link: "l"}})
			if tt.want == "" {
				assert.Empty(t, res)
				return
			}
			assert.Equal(t, []domain.NewsItem{{Title: tt.want, Link: "l"}}, res)
		})
	}
}

func TestPriceFilter_PerSource(t *testing.T) {
	f := NewPriceFilter(map[string]*regexp.Regexp{"Oil": regexp.MustCompile(`\d+\.\d+ per barrel`), "skip": nil})

	res := f.Apply("oil", []domain.NewsItem{{Title: "Brent 80.10 per barrel, 80.10 USD"}})
	assert.Equal(t, []domain.NewsItem{{Title: "80.10 per barrel"}}, res)

	res = f.Apply("Gold", []domain.NewsItem{{Title: "Brent 80.10 per barrel, 80.10 USD"}})
	assert.Equal(t, []domain.NewsItem{{Title: "80.10 USD"}}, res)

	res = f.Apply("skip", []domain.NewsItem{{Title: "at 5 USD"}})
	assert.Equal(t, []domain.NewsItem{{Title: "5 USD"}}, res, "nil pattern falls back to default")
}
