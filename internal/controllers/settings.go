package controllers

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/amaumene/tvmaze-scraper/internal/mapper"
	"github.com/amaumene/tvmaze-scraper/internal/services/tvmaze"
	"github.com/sirupsen/logrus"
)

// Settings are the per-source scraper options. The host sends them as the
// pathSettings JSON parameter; absent keys take the configured defaults.
type Settings struct {
	EpisodeOrder  tvmaze.EpisodeOrder
	DefaultRating string
}

// settings merges the call's pathSettings over the defaults.
// Unreadable values are logged and ignored.
func (d *Dispatcher) settings(params url.Values) Settings {
	s := d.defaults
	raw := params.Get("pathSettings")
	if raw == "" {
		return s
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var values map[string]interface{}
	if err := dec.Decode(&values); err != nil {
		d.logger.WithError(err).Warn("Ignoring unreadable pathSettings")
		return s
	}

	if v, ok := values["episode_order"]; ok {
		order, err := tvmaze.ParseEpisodeOrder(fmt.Sprint(v))
		if err != nil {
			d.logger.WithError(err).Warn("Ignoring episode_order setting")
		} else {
			s.EpisodeOrder = order
		}
	}
	if v, ok := values["default_rating"]; ok {
		switch rating := strings.ToLower(fmt.Sprint(v)); rating {
		case mapper.RatingTVmaze, mapper.RatingIMDB:
			s.DefaultRating = rating
		default:
			d.logger.WithField("default_rating", v).Warn("Ignoring default_rating setting")
		}
	}

	d.logger.WithFields(logrus.Fields{
		"episode_order":  s.EpisodeOrder,
		"default_rating": s.DefaultRating,
	}).Debug("Path settings applied")
	return s
}
