package tvmaze

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// showEmbeds are the resources embedded in a full show request
var showEmbeds = []string{"cast", "seasons", "episodes", "crew"}

// SearchShows searches shows by title
func (c *Client) SearchShows(ctx context.Context, title string) ([]SearchResult, error) {
	var results []SearchResult
	if err := c.getJSON(ctx, "search", "/search/shows", url.Values{"q": {title}}, &results); err != nil {
		return nil, fmt.Errorf("failed to search shows: %w", err)
	}
	c.logger.WithField("count", len(results)).Debug("Show search completed")
	return results, nil
}

// GetShow loads a show with cast, seasons, episodes and crew embedded.
// The embedded episode list is moved into Show.Episodes.
func (c *Client) GetShow(ctx context.Context, showID int) (*Show, error) {
	var show Show
	path := "/shows/" + strconv.Itoa(showID)
	if err := c.getJSON(ctx, "show", path, url.Values{"embed[]": showEmbeds}, &show); err != nil {
		return nil, fmt.Errorf("failed to get show %d: %w", showID, err)
	}
	show.ProcessEpisodes()
	return &show, nil
}

// LookupShow finds a show by an ID in another database.
// provider is the TVmaze lookup key, "thetvdb" or "imdb".
func (c *Client) LookupShow(ctx context.Context, provider, externalID string) (*Show, error) {
	var show Show
	if err := c.getJSON(ctx, "lookup", "/lookup/shows", url.Values{provider: {externalID}}, &show); err != nil {
		return nil, fmt.Errorf("failed to look up %s %s: %w", provider, externalID, err)
	}
	return &show, nil
}

// GetEpisode loads a single episode
func (c *Client) GetEpisode(ctx context.Context, episodeID int) (*Episode, error) {
	var episode Episode
	path := "/episodes/" + strconv.Itoa(episodeID)
	if err := c.getJSON(ctx, "episode", path, nil, &episode); err != nil {
		return nil, fmt.Errorf("failed to get episode %d: %w", episodeID, err)
	}
	return &episode, nil
}
