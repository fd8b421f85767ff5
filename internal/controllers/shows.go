package controllers

import (
	"context"
	"errors"
	"fmt"

	"github.com/amaumene/tvmaze-scraper/internal/cache"
	"github.com/amaumene/tvmaze-scraper/internal/models"
	"github.com/amaumene/tvmaze-scraper/internal/services/imdb"
	"github.com/amaumene/tvmaze-scraper/internal/services/tvmaze"
	"github.com/sirupsen/logrus"
)

// ShowController loads show documents through the cache and keeps the id map current
type ShowController struct {
	client  *tvmaze.Client
	ratings *imdb.Client
	cache   *cache.Store
	db      *models.Database
	logger  *logrus.Logger
}

// NewShowController creates a new show controller.
// db may be nil; a nil ratings client skips IMDb ratings.
func NewShowController(client *tvmaze.Client, ratings *imdb.Client, store *cache.Store, db *models.Database, logger *logrus.Logger) *ShowController {
	return &ShowController{
		client:  client,
		ratings: ratings,
		cache:   store,
		db:      db,
		logger:  logger,
	}
}

// Load returns the full show document, from cache when fresh, else from TVmaze.
// A fetched show is cached and its external ids are recorded.
func (c *ShowController) Load(ctx context.Context, showID int) (*tvmaze.Show, error) {
	if show, ok := c.cache.Get(showID); ok {
		return show, nil
	}

	c.logger.WithField("show_id", showID).Debug("Loading show from TVmaze")
	show, err := c.client.GetShow(ctx, showID)
	if err != nil {
		return nil, err
	}

	c.addIMDBRating(ctx, show)

	if err := c.cache.Put(show); err != nil {
		c.logger.WithError(err).WithField("show_id", showID).Warn("Failed to cache show")
	}
	c.recordShow(show)
	return show, nil
}

// LoadOrdered returns the show with its episodes in the given order.
// A show without a list for that order keeps its broadcast order.
func (c *ShowController) LoadOrdered(ctx context.Context, showID int, order tvmaze.EpisodeOrder) (*tvmaze.Show, error) {
	if order == tvmaze.OrderDefault {
		return c.Load(ctx, showID)
	}
	if show, ok := c.cache.GetOrdered(showID, order); ok {
		return show, nil
	}

	show, err := c.Load(ctx, showID)
	if err != nil {
		return nil, err
	}

	log := c.logger.WithFields(logrus.Fields{
		"show_id": showID,
		"order":   order,
	})
	episodes, err := c.client.OrderedEpisodes(ctx, showID, order)
	switch {
	case errors.Is(err, tvmaze.ErrNotFound):
		log.Debug("Alternate episode list not found")
	case err != nil:
		return nil, err
	}

	ordered := *show
	if len(episodes) > 0 {
		ordered.Episodes = tvmaze.NewEpisodeMap(episodes)
	} else {
		log.Info("No alternate episode list, using broadcast order")
	}
	if err := c.cache.PutOrdered(&ordered, order); err != nil {
		log.WithError(err).Warn("Failed to cache ordered show")
	}
	return &ordered, nil
}

func (c *ShowController) addIMDBRating(ctx context.Context, show *tvmaze.Show) {
	if c.ratings == nil || show.Externals == nil || show.Externals.IMDB == nil || *show.Externals.IMDB == "" {
		return
	}
	rating, err := c.ratings.GetRating(ctx, *show.Externals.IMDB)
	if err != nil {
		c.logger.WithError(err).WithField("imdb_id", *show.Externals.IMDB).Debug("Unable to get IMDb rating")
		return
	}
	show.IMDBRating = &tvmaze.ExternalRating{Value: rating.Value, Votes: rating.Votes}
}

// Cached returns the show only if it is in the cache
func (c *ShowController) Cached(showID int) (*tvmaze.Show, bool) {
	return c.cache.Get(showID)
}

// Mapped returns the id map entry for ext without touching the network
func (c *ShowController) Mapped(ext models.ExternalID) (int, bool) {
	return c.db.ResolveMapping(ext)
}

// ResolveExternal maps an external id to a TVmaze show id, via the id map
// or a TVmaze lookup. An unknown id returns an error matching tvmaze.ErrNotFound.
func (c *ShowController) ResolveExternal(ctx context.Context, ext models.ExternalID) (int, error) {
	if showID, ok := c.db.ResolveMapping(ext); ok {
		c.logger.WithFields(logrus.Fields{
			"external_id": ext.String(),
			"show_id":     showID,
		}).Debug("External id resolved from id map")
		return showID, nil
	}

	show, err := c.client.LookupShow(ctx, string(ext.Provider), ext.Value)
	if err != nil {
		return 0, err
	}

	c.record(ext, show.ID)
	c.recordShow(show)
	return show.ID, nil
}

func (c *ShowController) record(ext models.ExternalID, showID int) {
	if _, err := c.db.RecordMapping(ext, showID); err != nil {
		c.logMappingError(err)
	}
}

func (c *ShowController) recordShow(show *tvmaze.Show) {
	if err := c.db.RecordShow(show); err != nil {
		c.logMappingError(err)
	}
}

func (c *ShowController) logMappingError(err error) {
	if errors.Is(err, models.ErrStoreUnavailable) {
		c.logger.Warn("Id map unavailable, mapping not recorded")
		return
	}
	c.logger.WithError(err).Warn("Failed to record id mapping")
}

// searchShows runs a title search and applies the year filter.
// With a year and more than one result, only shows premiered that year are kept.
func searchShows(ctx context.Context, client *tvmaze.Client, title, year string) ([]*tvmaze.Show, error) {
	results, err := client.SearchShows(ctx, title)
	if err != nil {
		if errors.Is(err, tvmaze.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to search for %q: %w", title, err)
	}

	shows := make([]*tvmaze.Show, 0, len(results))
	for i := range results {
		shows = append(shows, &results[i].Show)
	}
	if year == "" || len(shows) <= 1 {
		return shows, nil
	}

	filtered := shows[:0]
	for _, show := range shows {
		if show.PremieredYear() == year {
			filtered = append(filtered, show)
		}
	}
	return filtered, nil
}
