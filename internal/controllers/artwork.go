package controllers

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/amaumene/tvmaze-scraper/internal/host"
	"github.com/amaumene/tvmaze-scraper/internal/mapper"
	"github.com/amaumene/tvmaze-scraper/internal/models"
	"github.com/amaumene/tvmaze-scraper/internal/services/tvmaze"
	"github.com/sirupsen/logrus"
)

// getArtwork resolves the artwork set for a show given its default unique id
func (d *Dispatcher) getArtwork(ctx context.Context, params url.Values) error {
	id := strings.TrimSpace(params.Get("id"))
	if id == "" {
		d.logger.Warn("getartwork called without an id")
		return nil
	}

	showID, err := d.resolveArtworkID(ctx, id)
	if err != nil {
		return err
	}
	if showID == 0 {
		return d.notResolved(tvmaze.ErrNotFound, logrus.Fields{"id": id})
	}

	show, err := d.shows.Load(ctx, showID)
	if errors.Is(err, tvmaze.ErrNotFound) {
		return d.notResolved(err, logrus.Fields{"show_id": showID})
	}
	if err != nil {
		return err
	}

	item := host.ListItem{
		Label:   show.Name,
		Artwork: append(mapper.Artwork(show), mapper.SeasonArtwork(show)...),
	}
	return d.dir.SetResolvedURL(true, &item)
}

// resolveArtworkID turns the host's default unique id into a TVmaze id.
// "tt..." is an IMDb id. A number is a TheTVDB id unless the id map or the
// cache says otherwise; a TheTVDB miss falls back to reading it as a TVmaze id.
func (d *Dispatcher) resolveArtworkID(ctx context.Context, id string) (int, error) {
	if strings.HasPrefix(strings.ToLower(id), "tt") {
		return d.resolveExternal(ctx, models.ExternalID{Provider: models.ProviderIMDB, Value: id})
	}
	if !isDigits(id) {
		return 0, nil
	}

	ext := models.ExternalID{Provider: models.ProviderTheTVDB, Value: id}
	if showID, ok := d.shows.Mapped(ext); ok {
		return showID, nil
	}

	// A cached show whose default id is its own TVmaze id was announced by that id.
	n, err := parseShowID(id)
	if err != nil {
		return 0, err
	}
	if show, ok := d.shows.Cached(n); ok && mapper.UniqueIDs(show).Default == mapper.IDTVmaze {
		return n, nil
	}

	showID, err := d.shows.ResolveExternal(ctx, ext)
	if err == nil {
		return showID, nil
	}
	if !errors.Is(err, tvmaze.ErrNotFound) {
		return 0, err
	}
	d.logger.WithField("id", id).Debug("Not a TheTVDB id, using it as a TVmaze id")
	return n, nil
}
