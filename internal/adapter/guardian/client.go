// Package guardian fetches editor's picks from the Guardian content API.
package guardian

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/time/rate"

	"news-ticker/internal/domain/model"
	"news-ticker/internal/domain/neterr"
	"news-ticker/internal/domain/ports"
)

const (
	// DefaultBaseURL is the root of the Guardian content API.
	DefaultBaseURL = "https://content.guardianapis.com/"
	// TestAPIKey is used when no key is configured.
	TestAPIKey = "test"
	// DefaultTimeout bounds every request.
	DefaultTimeout = 10 * time.Second

	internationalEndpoint = "international"

	queryShowEditorsPicks = "show-editors-picks"
	queryFromDate         = "from-date"
	queryShowFields       = "show-fields"
	queryAPIKey           = "api-key"

	fieldByline   = "byline"
	fieldTrail    = "trailText"
	fieldThumb    = "thumbnail"
	maxErrorBytes = 4 * 1024
)

// Options configures a Client.
type Options struct {
	BaseURL   string
	APIKey    string
	Timeout   time.Duration
	RateLimit float64
	Transport http.RoundTripper
}

// Client implements ports.PicksProvider against the Guardian API.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	apiKey     string
	limiter    *rate.Limiter
	sanitizer  *bluemonday.Policy
	logger     ports.Logger
}

var _ ports.PicksProvider = (*Client)(nil)

// New builds a Client. Requests are logged at debug level and throttled to
// opts.RateLimit per second when it is positive.
func New(opts Options, logger ports.Logger) (*Client, error) {
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	next := opts.Transport
	if next == nil {
		next = http.DefaultTransport
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: &loggingTransport{next: next, logger: logger},
		},
		baseURL:   parsed,
		apiKey:    apiKeyOrTest(opts.APIKey),
		limiter:   rate.NewLimiter(limit, 1),
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger,
	}, nil
}

// FetchEditorsPicks requests the editor's picks published since fromDate.
func (c *Client) FetchEditorsPicks(ctx context.Context, fromDate string) ([]model.Article, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.editorsPicksURL(fromDate), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
		return nil, &neterr.HTTPError{StatusCode: resp.StatusCode, Body: body}
	}

	// Drain the body fully so the caching transport sees EOF and stores it.
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var payload editorsPicksEnvelope
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return c.toArticles(ctx, payload.Response.EditorsPicks), nil
}

func (c *Client) editorsPicksURL(fromDate string) string {
	endpoint := c.baseURL.ResolveReference(&url.URL{Path: internationalEndpoint})

	query := url.Values{}
	query.Set(queryShowEditorsPicks, "true")
	query.Set(queryFromDate, fromDate)
	query.Set(queryShowFields, strings.Join([]string{fieldByline, fieldTrail, fieldThumb}, ","))
	query.Set(queryAPIKey, c.apiKey)
	endpoint.RawQuery = query.Encode()

	return endpoint.String()
}

func (c *Client) toArticles(ctx context.Context, items []articlePayload) []model.Article {
	articles := make([]model.Article, 0, len(items))
	seen := make(map[string]struct{}, len(items))

	for _, item := range items {
		id := strings.TrimSpace(item.ID)
		if id == "" || strings.TrimSpace(item.WebURL) == "" {
			c.logger.Debug(ctx, "skipping incomplete article", "id", id)
			continue
		}
		if _, exists := seen[id]; exists {
			continue
		}
		seen[id] = struct{}{}

		articles = append(articles, model.Article{
			ID:            id,
			SectionID:     item.SectionID,
			SectionName:   item.SectionName,
			PublishedDate: item.WebPublicationDate,
			Title:         strings.TrimSpace(item.WebTitle),
			URL:           strings.TrimSpace(item.WebURL),
			Fields: model.ArticleFields{
				TrailText: strings.TrimSpace(c.sanitizer.Sanitize(item.Fields.TrailText)),
				Author:    strings.TrimSpace(item.Fields.Byline),
				Thumbnail: strings.TrimSpace(item.Fields.Thumbnail),
			},
		})
	}

	return articles
}

func apiKeyOrTest(key string) string {
	if strings.TrimSpace(key) == "" {
		return TestAPIKey
	}
	return key
}

type editorsPicksEnvelope struct {
	Response editorsPicksResponse `json:"response"`
}

type editorsPicksResponse struct {
	Status       string           `json:"status"`
	Total        int              `json:"total"`
	Pages        int              `json:"pages"`
	PageSize     int              `json:"pageSize"`
	EditorsPicks []articlePayload `json:"editorsPicks"`
}

type articlePayload struct {
	ID                 string        `json:"id"`
	SectionID          string        `json:"sectionId"`
	SectionName        string        `json:"sectionName"`
	WebPublicationDate string        `json:"webPublicationDate"`
	WebTitle           string        `json:"webTitle"`
	WebURL             string        `json:"webUrl"`
	Fields             fieldsPayload `json:"fields"`
}

type fieldsPayload struct {
	TrailText string `json:"trailText"`
	Byline    string `json:"byline"`
	Thumbnail string `json:"thumbnail"`
}
