package fanout

import (
	"news-ticker/internal/domain/model"
	"news-ticker/internal/domain/neterr"
	"news-ticker/internal/domain/ports"
)

// Presenter forwards every signal to a list of presenters in order.
type Presenter struct {
	presenters []ports.Presenter
}

var _ ports.Presenter = (*Presenter)(nil)

// New constructs a Presenter, skipping nil entries.
func New(presenters ...ports.Presenter) *Presenter {
	active := make([]ports.Presenter, 0, len(presenters))
	for _, p := range presenters {
		if p != nil {
			active = append(active, p)
		}
	}
	return &Presenter{presenters: active}
}

func (f *Presenter) Loading(active bool) {
	for _, p := range f.presenters {
		p.Loading(active)
	}
}

// Publish hands each presenter its own copy of the buffer.
func (f *Presenter) Publish(articles []model.Article) {
	for _, p := range f.presenters {
		clone := make([]model.Article, len(articles))
		copy(clone, articles)
		p.Publish(clone)
	}
}

func (f *Presenter) ScrollToTop() {
	for _, p := range f.presenters {
		p.ScrollToTop()
	}
}

func (f *Presenter) Message(category neterr.Category, message string) {
	for _, p := range f.presenters {
		p.Message(category, message)
	}
}
