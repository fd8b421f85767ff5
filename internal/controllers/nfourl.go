package controllers

import (
	"context"
	"net/url"
	"strconv"

	"github.com/amaumene/tvmaze-scraper/internal/host"
	"github.com/amaumene/tvmaze-scraper/internal/mapper"
	"github.com/amaumene/tvmaze-scraper/internal/models"
	"github.com/amaumene/tvmaze-scraper/internal/nfo"
	"github.com/sirupsen/logrus"
)

// nfoURL identifies a show (or episode) from NFO file contents
func (d *Dispatcher) nfoURL(ctx context.Context, params url.Values) error {
	content := params.Get("nfo")
	if content == "" {
		content = params.Get("url")
	}
	if content == "" {
		_, err := requireParam(params, "nfo")
		return err
	}

	id, isShow, err := d.resolveNFO(ctx, content)
	if err != nil {
		return err
	}
	if id == 0 {
		d.logger.Info("No TVmaze id found in NFO")
		return nil
	}

	idString := strconv.Itoa(id)
	ids := host.UniqueIDs{IDs: map[string]string{mapper.IDTVmaze: idString}, Default: mapper.IDTVmaze}
	item := host.ListItem{UniqueIDs: &ids}
	if isShow {
		item.Info.EpisodeGuide = mapper.EpisodeGuide(ids)
	}

	d.logger.WithFields(logrus.Fields{
		"id":   id,
		"show": isShow,
	}).Info("NFO resolved")
	return d.dir.AddDirectoryItem(idString, item, true)
}

// resolveNFO tries the XML form first and falls back to URL patterns.
// It returns the TVmaze id and whether it names a show rather than an episode.
func (d *Dispatcher) resolveNFO(ctx context.Context, content string) (int, bool, error) {
	if nfo.IsXML(content) {
		doc, err := nfo.ParseXML(content)
		if err != nil {
			d.logger.WithError(err).Debug("NFO is not valid XML, trying URL patterns")
		} else if doc.Kind == nfo.KindEpisode {
			id, err := d.resolveEpisodeNFO(doc)
			return id, false, err
		} else {
			id, err := d.resolveShowNFO(ctx, doc)
			if err != nil || id != 0 {
				return id, true, err
			}
		}
	}

	m, ok := nfo.ParseURL(content)
	if !ok {
		return 0, true, nil
	}
	d.logger.WithFields(logrus.Fields{
		"provider": m.Provider,
		"id":       m.ID,
	}).Debug("Matched show URL in NFO")
	id, err := d.resolveURLMatch(ctx, m)
	return id, true, err
}

func (d *Dispatcher) resolveEpisodeNFO(doc *nfo.Document) (int, error) {
	v, ok := doc.UniqueIDs[nfo.ProviderTVmaze]
	if !ok {
		return 0, nil
	}
	return parseShowID(v)
}

// resolveShowNFO uses the tvmaze uniqueid, then imdb, then thetvdb, then
// a title search that must identify a single show.
func (d *Dispatcher) resolveShowNFO(ctx context.Context, doc *nfo.Document) (int, error) {
	if v, ok := doc.UniqueIDs[nfo.ProviderTVmaze]; ok {
		return parseShowID(v)
	}
	for _, provider := range []models.Provider{models.ProviderIMDB, models.ProviderTheTVDB} {
		v, ok := doc.UniqueIDs[string(provider)]
		if !ok {
			continue
		}
		id, err := d.resolveExternal(ctx, models.ExternalID{Provider: provider, Value: v})
		if err != nil || id != 0 {
			return id, err
		}
	}

	if doc.Title == "" {
		return 0, nil
	}
	shows, err := searchShows(ctx, d.client, doc.Title, doc.Year)
	if err != nil {
		return 0, err
	}
	names := make([]string, len(shows))
	for i, show := range shows {
		names[i] = show.Name
	}
	idx, ok := nfo.BestTitleMatch(doc.Title, names)
	if !ok {
		d.logger.WithFields(logrus.Fields{
			"title":   doc.Title,
			"year":    doc.Year,
			"results": len(shows),
		}).Debug("NFO title search was ambiguous")
		return 0, nil
	}
	return shows[idx].ID, nil
}
