package console

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/goodsign/monday"
	"github.com/stretchr/testify/assert"

	"news-ticker/internal/domain/model"
	"news-ticker/internal/domain/neterr"
	"news-ticker/internal/timefmt"
)

func plainPresenter(out *bytes.Buffer) *Presenter {
	return New(out, Options{Dates: timefmt.Options{Locale: monday.LocaleEnUS, Location: time.UTC}})
}

func TestPublishRendersNewestFirst(t *testing.T) {
	var out bytes.Buffer
	p := plainPresenter(&out)

	p.Publish([]model.Article{
		{
			ID:            "b",
			SectionName:   "Sport",
			PublishedDate: "2018-01-14T13:50:00Z",
			Title:         "Second",
			URL:           "https://www.theguardian.com/b",
			Fields:        model.ArticleFields{TrailText: "<p>Big <strong>win</strong></p>", Author: "Jane Doe"},
		},
		{
			ID:          "a",
			SectionName: "World news",
			Title:       "First",
			URL:         "https://www.theguardian.com/a",
		},
	})

	got := out.String()
	assert.Contains(t, got, "Top Stories (2)")
	assert.Contains(t, got, " 1. Second\n")
	assert.Contains(t, got, "Sport | by Jane Doe | on Jan 14, 2018 at 1:50:00 PM UTC")
	assert.Contains(t, got, "    Big win\n")
	assert.Contains(t, got, " 2. First\n")
	assert.Contains(t, got, "World news | Unknown author | Date not available")
	assert.Less(t, strings.Index(got, "Second"), strings.Index(got, "First"))
	assert.NotContains(t, got, clearScreen)
}

func TestLoadingAndMessages(t *testing.T) {
	var out bytes.Buffer
	p := plainPresenter(&out)

	p.Loading(true)
	p.Loading(true)
	p.Message(neterr.CategoryInternal, neterr.CategoryInternal.Message())
	p.Loading(false)

	got := out.String()
	assert.Equal(t, 1, strings.Count(got, "Loading editor's picks..."))
	assert.Contains(t, got, "! "+neterr.CategoryInternal.Message())
	assert.Contains(t, got, "0 stories.")
}

func TestClearScreenMode(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, Options{Clear: true})

	p.Publish(nil)
	p.ScrollToTop()

	assert.True(t, strings.HasPrefix(out.String(), clearScreen))
	assert.True(t, strings.HasSuffix(out.String(), cursorHome))
}

func TestHTMLToText(t *testing.T) {
	assert.Equal(t, "Kotlin is Awesome!", htmlToText("Kotlin is Awesome!"))
	assert.Equal(t, "Line one Line two", htmlToText("Line one<br>Line   two"))
	assert.Empty(t, htmlToText(""))
}
