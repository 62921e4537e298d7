package guardian

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gregjones/httpcache"

	"news-ticker/internal/domain/ports"
)

// loggingTransport logs every round trip at debug level with the api key redacted.
type loggingTransport struct {
	next   http.RoundTripper
	logger ports.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	if t.logger == nil {
		return resp, err
	}

	target := redact(req.URL)
	if err != nil {
		t.logger.Debug(req.Context(), "http request failed", "method", req.Method, "url", target, "error", err)
		return resp, err
	}

	t.logger.Debug(req.Context(), "http request",
		"method", req.Method,
		"url", target,
		"status", resp.StatusCode,
		"cached", resp.Header.Get(httpcache.XFromCache) == "1",
		"duration", time.Since(start),
	)
	return resp, nil
}

func redact(u *url.URL) string {
	clone := *u
	query := clone.Query()
	if query.Has(queryAPIKey) {
		query.Set(queryAPIKey, "REDACTED")
		clone.RawQuery = query.Encode()
	}
	return clone.String()
}
