package ports

import (
	"news-ticker/internal/domain/model"
	"news-ticker/internal/domain/neterr"
)

// Presenter receives display updates from the ticker feed.
// Publish always gets a private copy of the display buffer, newest first.
// ScrollToTop is sent exactly once per revealed article, after its Publish.
type Presenter interface {
	Loading(active bool)
	Publish(articles []model.Article)
	ScrollToTop()
	Message(category neterr.Category, message string)
}
