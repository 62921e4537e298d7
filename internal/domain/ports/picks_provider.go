package ports

import (
	"context"

	"news-ticker/internal/domain/model"
)

// PicksProvider fetches the editor's picks published on or after fromDate.
type PicksProvider interface {
	FetchEditorsPicks(ctx context.Context, fromDate string) ([]model.Article, error)
}
