package di

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/goodsign/monday"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"news-ticker/internal/adapter/browser"
	"news-ticker/internal/adapter/console"
	"news-ticker/internal/adapter/fanout"
	"news-ticker/internal/adapter/guardian"
	"news-ticker/internal/adapter/logging"
	"news-ticker/internal/adapter/metrics"
	"news-ticker/internal/adapter/network"
	"news-ticker/internal/app"
	"news-ticker/internal/config"
	"news-ticker/internal/domain/ports"
	"news-ticker/internal/timefmt"
	"news-ticker/internal/usecase"
)

// The ticker renders on stdout, so logs go to stderr.
func provideSlogLogger(cfg *config.Config) *slog.Logger {
	return logging.NewJSON(os.Stderr, cfg.LogLevel)
}

func provideClock() usecase.Clock {
	return usecase.SystemClock()
}

func provideDiskCache(cfg *config.Config) (*guardian.DiskCache, error) {
	return guardian.NewDiskCache(cfg.CacheDir, cfg.CacheSizeBytes)
}

func providePicksProvider(cfg *config.Config, cache *guardian.DiskCache, logger ports.Logger) (ports.PicksProvider, error) {
	return guardian.New(guardian.Options{
		BaseURL:   cfg.GuardianBaseURL,
		APIKey:    cfg.GuardianAPIKey,
		Timeout:   cfg.RequestTimeout,
		RateLimit: cfg.APIRateLimit,
		Transport: guardian.NewCachingTransport(cache, nil),
	}, logger)
}

func provideConnectivity(cfg *config.Config, logger ports.Logger) ports.ConnectivityChecker {
	address := cfg.ConnectivityProbe
	if address == "" {
		address = network.AddressFor(cfg.GuardianBaseURL)
	}
	return network.NewProbe(address, 3*time.Second, logger)
}

func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideMetricsPresenter(reg *prometheus.Registry) *metrics.Presenter {
	return metrics.NewPresenter(reg)
}

func provideConsolePresenter(cfg *config.Config) *console.Presenter {
	useColors := resolveColors(cfg.ColorMode)
	return console.New(os.Stdout, console.Options{
		Color: useColors,
		Clear: useColors,
		Dates: timefmt.Options{Locale: monday.Locale(cfg.DateLocale), Location: time.Local},
	})
}

func resolveColors(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return !color.NoColor
	}
}

func providePresenter(terminal *console.Presenter, recorder *metrics.Presenter) ports.Presenter {
	return fanout.New(terminal, recorder)
}

func provideLinkOpener() ports.LinkOpener {
	return browser.New()
}

func provideFeedConfig(cfg *config.Config) usecase.TickerFeedConfig {
	return usecase.TickerFeedConfig{
		Delay:        cfg.TickerDelay,
		LookbackDays: cfg.LookbackDays,
	}
}

func provideSchedule(cfg *config.Config) string {
	return cfg.RefreshCron
}

func provideCommands() io.Reader {
	return os.Stdin
}

func provideMetricsServer(cfg *config.Config, reg *prometheus.Registry) app.MetricsServer {
	if cfg.MetricsAddr == "" {
		return nil
	}
	return metrics.NewServer(cfg.MetricsAddr, reg)
}
