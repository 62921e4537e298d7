//go:build wireinject

package di

import (
	"github.com/google/wire"

	"news-ticker/internal/adapter/logging"
	"news-ticker/internal/app"
	"news-ticker/internal/config"
	"news-ticker/internal/domain/ports"
	"news-ticker/internal/usecase"
)

// InitializeApp wires the application components together.
func InitializeApp() (*app.App, error) {
	wire.Build(
		config.Load,
		provideSlogLogger,
		logging.New,
		wire.Bind(new(ports.Logger), new(*logging.SLogger)),
		provideClock,
		provideDiskCache,
		providePicksProvider,
		usecase.NewPicksFetcher,
		provideConnectivity,
		provideRegistry,
		provideMetricsPresenter,
		provideConsolePresenter,
		providePresenter,
		provideLinkOpener,
		provideFeedConfig,
		usecase.NewTickerFeed,
		wire.Bind(new(app.Feed), new(*usecase.TickerFeed)),
		provideSchedule,
		provideCommands,
		provideMetricsServer,
		app.New,
	)
	return nil, nil
}
