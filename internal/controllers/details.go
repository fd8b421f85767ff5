package controllers

import (
	"context"
	"errors"
	"net/url"

	"github.com/amaumene/tvmaze-scraper/internal/mapper"
	"github.com/amaumene/tvmaze-scraper/internal/services/tvmaze"
	"github.com/sirupsen/logrus"
)

// getDetails resolves full show info by TVmaze id or by a JSON set of unique ids
func (d *Dispatcher) getDetails(ctx context.Context, params url.Values) error {
	var showID int
	var err error

	switch {
	case params.Get("url") != "":
		if showID, err = parseShowID(params.Get("url")); err != nil {
			return err
		}
	case params.Get("uniqueIDs") != "":
		ids, err := parseUniqueIDs(params.Get("uniqueIDs"))
		if err != nil {
			return err
		}
		if showID, err = d.resolveUniqueIDs(ctx, ids); err != nil {
			return err
		}
		if showID == 0 {
			d.logger.WithField("unique_ids", ids).Info("No TVmaze show for unique ids")
			return d.dir.SetResolvedURL(false, nil)
		}
	default:
		_, err := requireParam(params, "url")
		return err
	}

	show, err := d.shows.Load(ctx, showID)
	if errors.Is(err, tvmaze.ErrNotFound) {
		return d.notResolved(err, logrus.Fields{"show_id": showID})
	}
	if err != nil {
		return err
	}

	item := mapper.ShowInfo(show, true)
	item.Ratings = mapper.Ratings(show, d.settings(params).DefaultRating)
	return d.dir.SetResolvedURL(true, &item)
}
