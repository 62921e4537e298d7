package fanout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"news-ticker/internal/domain/model"
	"news-ticker/internal/domain/neterr"
)

type recorder struct {
	calls     []string
	published []model.Article
}

func (r *recorder) Loading(active bool) {
	if active {
		r.calls = append(r.calls, "loading")
		return
	}
	r.calls = append(r.calls, "idle")
}

func (r *recorder) Publish(articles []model.Article) {
	r.published = articles
	r.calls = append(r.calls, "publish")
}

func (r *recorder) ScrollToTop() {
	r.calls = append(r.calls, "scroll")
}

func (r *recorder) Message(category neterr.Category, _ string) {
	r.calls = append(r.calls, "message:"+category.String())
}

func TestPresenterForwardsToAll(t *testing.T) {
	first, second := &recorder{}, &recorder{}
	p := New(first, nil, second)

	p.Loading(true)
	p.Publish([]model.Article{{ID: "a"}})
	p.ScrollToTop()
	p.Message(neterr.CategoryUnavailable, "down")
	p.Loading(false)

	want := []string{"loading", "publish", "scroll", "message:unavailable", "idle"}
	assert.Equal(t, want, first.calls)
	assert.Equal(t, want, second.calls)
}

func TestPresenterCopiesBuffer(t *testing.T) {
	first, second := &recorder{}, &recorder{}
	p := New(first, second)

	p.Publish([]model.Article{{ID: "a"}})
	first.published[0].ID = "changed"

	assert.Equal(t, "a", second.published[0].ID)
}
