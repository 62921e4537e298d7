package usecase

import (
	"context"
	"fmt"
	"time"

	"news-ticker/internal/domain/model"
	"news-ticker/internal/domain/ports"
	"news-ticker/internal/timefmt"
)

// TrailerID identifies the synthetic article appended to every batch.
const TrailerID = "111"

// PicksFetcher produces a Batch of editor's picks with the trailer appended.
type PicksFetcher struct {
	provider ports.PicksProvider
	clock    Clock
	logger   ports.Logger
}

// NewPicksFetcher constructs a PicksFetcher.
func NewPicksFetcher(provider ports.PicksProvider, clock Clock, logger ports.Logger) *PicksFetcher {
	if clock == nil {
		clock = SystemClock()
	}
	return &PicksFetcher{
		provider: provider,
		clock:    clock,
		logger:   logger,
	}
}

// Fetch performs one request for picks published since fromDate.
func (f *PicksFetcher) Fetch(ctx context.Context, fromDate string) (model.Batch, error) {
	articles, err := f.provider.FetchEditorsPicks(ctx, fromDate)
	if err != nil {
		return model.Batch{}, fmt.Errorf("fetch editors picks: %w", err)
	}

	fetchedAt := f.clock.Now()
	items := make([]model.Article, 0, len(articles)+1)
	items = append(items, articles...)
	items = append(items, Trailer(fetchedAt))

	f.logger.Debug(ctx, "editors picks fetched", "from_date", fromDate, "count", len(articles))
	return model.Batch{Articles: items, FetchedAt: fetchedAt}, nil
}

// FromDate returns the lookback lower bound for a fetch started at now.
func FromDate(now time.Time, days int) string {
	return timefmt.DaysAgo(now, days)
}

// Trailer builds the fixed article appended to every successful fetch.
func Trailer(at time.Time) model.Article {
	return model.Article{
		ID:            TrailerID,
		SectionID:     "1112",
		SectionName:   "#30DaysOfKotlin",
		PublishedDate: timefmt.ISO(at),
		Title:         "Thank You Google!",
		URL:           "https://eventsonair.withgoogle.com/events/kotlin",
		Fields: model.ArticleFields{
			TrailText: "Kotlin is Awesome!",
			Author:    "Kaushik N. Sanji",
			Thumbnail: "https://www.google.com/images/branding/googlelogo/2x/googlelogo_color_92x30dp.png",
		},
	}
}
