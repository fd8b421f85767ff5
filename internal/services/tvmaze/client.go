package tvmaze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/amaumene/tvmaze-scraper/internal/config"
	"github.com/amaumene/tvmaze-scraper/internal/metrics"
	"github.com/sirupsen/logrus"
)

// ErrNotFound matches an UpstreamError for HTTP 404
var ErrNotFound = errors.New("not found on TVmaze")

// UpstreamError is returned for any non-2xx TVmaze response
type UpstreamError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("TVmaze returned status %d for %s: %s", e.StatusCode, e.URL, e.Body)
}

// Is lets errors.Is(err, ErrNotFound) report a 404
func (e *UpstreamError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client handles communication with the TVmaze API
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *logrus.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a new TVmaze API client.
// A nil httpClient gets a plain client with transport defaults and no timeout.
func NewClient(cfg *config.Config, httpClient *http.Client, logger *logrus.Logger, m *metrics.Metrics) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		httpClient: httpClient,
		logger:     logger,
		metrics:    m,
	}
}

// getJSON performs a GET request and decodes the JSON body into result
func (c *Client) getJSON(ctx context.Context, endpoint, path string, query url.Values, result interface{}) error {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	c.logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"url":      fullURL,
	}).Debug("Calling TVmaze API")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.UpstreamRequest(endpoint, 0)
		return fmt.Errorf("TVmaze request failed: %w", err)
	}
	defer resp.Body.Close()

	c.metrics.UpstreamRequest(endpoint, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"url":         fullURL,
		}).Debug("TVmaze returned non-OK status")
		return &UpstreamError{
			StatusCode: resp.StatusCode,
			URL:        fullURL,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode TVmaze response: %w", err)
	}

	return nil
}
