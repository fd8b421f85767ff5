package imdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/amaumene/tvmaze-scraper/internal/config"
	"github.com/amaumene/tvmaze-scraper/internal/metrics"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// ErrNoRating is returned when a title page carries no aggregate rating
var ErrNoRating = errors.New("no IMDb rating on title page")

// Rating is the aggregate user rating of a title
type Rating struct {
	Value float64
	Votes int
}

// Client reads ratings from IMDb title pages
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *logrus.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a new IMDb client. A nil httpClient gets a plain client.
func NewClient(cfg *config.Config, httpClient *http.Client, logger *logrus.Logger, m *metrics.Metrics) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.IMDBBaseURL, "/"),
		userAgent:  cfg.UserAgent,
		httpClient: httpClient,
		logger:     logger,
		metrics:    m,
	}
}

// GetRating loads the title page of imdbID and reads the rating from its
// JSON-LD block
func (c *Client) GetRating(ctx context.Context, imdbID string) (*Rating, error) {
	pageURL := c.baseURL + "/title/" + imdbID + "/"
	c.logger.WithField("url", pageURL).Debug("Calling IMDb")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.UpstreamRequest("imdb_title", 0)
		return nil, fmt.Errorf("IMDb request failed: %w", err)
	}
	defer resp.Body.Close()

	c.metrics.UpstreamRequest("imdb_title", resp.StatusCode)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("IMDb returned status %d for %s", resp.StatusCode, pageURL)
	}

	rating, err := parseRating(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read rating of %s: %w", imdbID, err)
	}
	return rating, nil
}

type ldJSON struct {
	AggregateRating *struct {
		RatingValue float64 `json:"ratingValue"`
		RatingCount int     `json:"ratingCount"`
	} `json:"aggregateRating"`
}

// parseRating finds the first application/ld+json script with an aggregate rating
func parseRating(r io.Reader) (*Rating, error) {
	z := html.NewTokenizer(r)
	inLD := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return nil, ErrNoRating
			}
			return nil, z.Err()
		case html.StartTagToken:
			inLD = isLDScript(z)
		case html.EndTagToken:
			inLD = false
		case html.TextToken:
			if !inLD {
				continue
			}
			var doc ldJSON
			if err := json.Unmarshal(z.Text(), &doc); err != nil || doc.AggregateRating == nil {
				continue
			}
			return &Rating{
				Value: doc.AggregateRating.RatingValue,
				Votes: doc.AggregateRating.RatingCount,
			}, nil
		}
	}
}

func isLDScript(z *html.Tokenizer) bool {
	name, hasAttr := z.TagName()
	if string(name) != "script" {
		return false
	}
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		if string(key) == "type" && strings.EqualFold(string(val), "application/ld+json") {
			return true
		}
	}
	return false
}
