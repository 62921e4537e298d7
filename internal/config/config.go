package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config contains runtime configuration values.
type Config struct {
	GuardianAPIKey    string
	GuardianBaseURL   string
	TickerDelay       time.Duration
	LookbackDays      int
	RequestTimeout    time.Duration
	APIRateLimit      float64
	CacheDir          string
	CacheSizeBytes    int64
	RefreshCron       string
	ConnectivityProbe string
	MetricsAddr       string
	LogLevel          string
	DateLocale        string
	ColorMode         string
}

const (
	defaultBaseURL      = "https://content.guardianapis.com/"
	defaultTickerDelay  = 2 * time.Second
	defaultLookbackDays = 7
	defaultTimeout      = 10 * time.Second
	defaultRateLimit    = 1.0
	defaultCacheSize    = 10 * 1024 * 1024
	defaultRefreshCron  = "*/30 * * * *"
	defaultLogLevel     = "info"
	defaultDateLocale   = "en_US"
	defaultColorMode    = "auto"
)

// Load builds a Config from environment variables with sane defaults.
// A .env file in the working directory is applied first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		GuardianAPIKey:    os.Getenv("GUARDIAN_API_KEY"),
		GuardianBaseURL:   getenvDefault("GUARDIAN_BASE_URL", defaultBaseURL),
		TickerDelay:       parseDurationDefault("TICKER_DELAY", defaultTickerDelay),
		LookbackDays:      parseIntDefault("LOOKBACK_DAYS", defaultLookbackDays),
		RequestTimeout:    parseDurationDefault("REQUEST_TIMEOUT", defaultTimeout),
		APIRateLimit:      parseFloatDefault("API_RATE_LIMIT", defaultRateLimit),
		CacheDir:          getenvDefault("CACHE_DIR", defaultCacheDir()),
		CacheSizeBytes:    int64(parseIntDefault("CACHE_SIZE_BYTES", defaultCacheSize)),
		RefreshCron:       lookupDefault("REFRESH_CRON", defaultRefreshCron),
		ConnectivityProbe: os.Getenv("CONNECTIVITY_PROBE"),
		MetricsAddr:       os.Getenv("METRICS_ADDR"),
		LogLevel:          getenvDefault("LOG_LEVEL", defaultLogLevel),
		DateLocale:        getenvDefault("DATE_LOCALE", defaultDateLocale),
		ColorMode:         getenvDefault("COLOR", defaultColorMode),
	}

	if cfg.TickerDelay <= 0 {
		cfg.TickerDelay = defaultTickerDelay
	}

	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = defaultLookbackDays
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultTimeout
	}

	if cfg.CacheSizeBytes <= 0 {
		cfg.CacheSizeBytes = defaultCacheSize
	}

	switch cfg.ColorMode {
	case "auto", "always", "never":
	default:
		return nil, fmt.Errorf("invalid COLOR %q: must be auto, always, or never", cfg.ColorMode)
	}

	return cfg, nil
}

func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "news-ticker", "http")
}

func getenvDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// lookupDefault honours an explicitly empty value, which disables the feature.
func lookupDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func parseIntDefault(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func parseFloatDefault(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

func parseDurationDefault(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
