// Package remote downloads the dataset CSVs over HTTP, caching bodies so an
// upstream outage falls back to the last good download.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/ipl-stats-service/internal/cache"
	"github.com/preston-bernstein/ipl-stats-service/internal/domain/deliveries"
	"github.com/preston-bernstein/ipl-stats-service/internal/domain/matches"
	"github.com/preston-bernstein/ipl-stats-service/internal/logging"
	"github.com/preston-bernstein/ipl-stats-service/internal/providers"
	"github.com/preston-bernstein/ipl-stats-service/internal/tabular"
)

// Config controls how the remote client reaches the dataset URLs.
type Config struct {
	MatchesURL    string
	DeliveriesURL string
	HTTPClient    *http.Client
	Cache         *cache.Store
	CacheTTL      time.Duration
	Logger        *slog.Logger
}

// Client fetches CSV exports from URLs and maps them to domain records.
type Client struct {
	matchesURL    string
	deliveriesURL string
	httpClient    httpDoer
	cache         *cache.Store
	cacheTTL      time.Duration
	logger        *slog.Logger
	now           func() time.Time
}

// NewClient constructs a remote client. Both URLs are required.
func NewClient(cfg Config) (*Client, error) {
	if cfg.MatchesURL == "" || cfg.DeliveriesURL == "" {
		return nil, errors.New("remote: matches and deliveries URLs required")
	}
	return &Client{
		matchesURL:    cfg.MatchesURL,
		deliveriesURL: cfg.DeliveriesURL,
		httpClient:    resolveHTTPClient(cfg.HTTPClient),
		cache:         cfg.Cache,
		cacheTTL:      cfg.CacheTTL,
		logger:        cfg.Logger,
		now:           time.Now,
	}, nil
}

// Name identifies the provider in logs and metrics.
func (c *Client) Name() string {
	return providerName
}

// Close releases the download cache.
func (c *Client) Close() error {
	return c.cache.Close()
}

// FetchMatches downloads and decodes the matches CSV.
func (c *Client) FetchMatches(ctx context.Context) ([]matches.Match, error) {
	body, err := c.fetch(ctx, c.matchesURL)
	if err != nil {
		return nil, err
	}
	return tabular.DecodeMatches(bytes.NewReader(body))
}

// FetchDeliveries downloads and decodes the deliveries CSV.
func (c *Client) FetchDeliveries(ctx context.Context) ([]deliveries.Delivery, error) {
	body, err := c.fetch(ctx, c.deliveriesURL)
	if err != nil {
		return nil, err
	}
	return tabular.DecodeDeliveries(bytes.NewReader(body))
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	cached, hit, cacheErr := c.cache.Get(url)
	if cacheErr != nil {
		logging.Warn(c.logger, "download cache read failed", "url", url, "error", cacheErr)
	}
	if hit && cached.Fresh(c.cacheTTL, c.now()) {
		logging.Info(c.logger, "serving cached download", "url", url, logging.FieldProvider, providerName)
		return cached.Body, nil
	}

	body, err := c.download(ctx, url)
	if err != nil {
		if hit {
			logging.Warn(c.logger, "download failed, serving stale cache",
				"url", url,
				"fetched_at", cached.FetchedAt,
				"error", err,
			)
			return cached.Body, nil
		}
		return nil, err
	}
	if err := c.cache.Put(url, body); err != nil {
		logging.Warn(c.logger, "download cache write failed", "url", url, "error", err)
	}
	return body, nil
}

func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/csv, */*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", providers.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Message:    strings.TrimSpace(string(msg)),
		}
	case resp.StatusCode != http.StatusOK:
		return nil, &providers.StatusError{Provider: providerName, URL: url, StatusCode: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}
