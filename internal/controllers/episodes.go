package controllers

import (
	"context"
	"errors"
	"net/url"

	"github.com/amaumene/tvmaze-scraper/internal/mapper"
	"github.com/amaumene/tvmaze-scraper/internal/services/tvmaze"
	"github.com/sirupsen/logrus"
)

// getEpisodeList lists every episode of a show, in broadcast order or the
// alternate order picked in the path settings
func (d *Dispatcher) getEpisodeList(ctx context.Context, params url.Values) error {
	guide, err := requireParam(params, "url")
	if err != nil {
		return err
	}

	showID, err := d.resolveEpisodeGuide(ctx, guide)
	if err != nil {
		return err
	}
	if showID == 0 {
		d.logger.WithField("episodeguide", guide).Error("Unable to determine TVmaze show id from episodeguide")
		return nil
	}

	show, err := d.shows.LoadOrdered(ctx, showID, d.settings(params).EpisodeOrder)
	if errors.Is(err, tvmaze.ErrNotFound) {
		d.logger.WithField("show_id", showID).Info("Show not found on TVmaze")
		return nil
	}
	if err != nil {
		return err
	}

	episodes := show.Episodes.Values()
	for i := range episodes {
		ep := &episodes[i]
		ref := EpisodeRef{ShowID: show.ID, EpisodeID: ep.ID, Season: ep.Season, Number: ep.Number}
		if err := d.dir.AddDirectoryItem(ref.Encode(), mapper.EpisodeInfo(ep, false), true); err != nil {
			return err
		}
	}

	d.logger.WithFields(logrus.Fields{
		"show_id": show.ID,
		"count":   len(episodes),
	}).Info("Episode list sent")
	return nil
}

// getEpisodeDetails serves an episode from its show's document,
// fetching the episode alone when the show does not contain it.
func (d *Dispatcher) getEpisodeDetails(ctx context.Context, params url.Values) error {
	raw, err := requireParam(params, "url")
	if err != nil {
		return err
	}
	ref, err := DecodeEpisodeRef(raw)
	if err != nil {
		return err
	}
	log := d.logger.WithFields(logrus.Fields{
		"show_id":    ref.ShowID,
		"episode_id": ref.EpisodeID,
	})

	show, err := d.shows.LoadOrdered(ctx, ref.ShowID, d.settings(params).EpisodeOrder)
	switch {
	case errors.Is(err, tvmaze.ErrNotFound):
		log.Debug("Show not found, fetching episode directly")
	case err != nil:
		return err
	default:
		if ep, ok := show.Episodes.Get(ref.EpisodeID); ok {
			item := mapper.EpisodeInfo(ep, true)
			return d.dir.SetResolvedURL(true, &item)
		}
		log.Debug("Episode not in show document, fetching directly")
	}

	ep, err := d.client.GetEpisode(ctx, ref.EpisodeID)
	if errors.Is(err, tvmaze.ErrNotFound) {
		return d.notResolved(err, logrus.Fields{"episode_id": ref.EpisodeID})
	}
	if err != nil {
		return err
	}

	item := mapper.EpisodeInfo(ep, true)
	return d.dir.SetResolvedURL(true, &item)
}
