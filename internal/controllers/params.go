package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/amaumene/tvmaze-scraper/internal/mapper"
	"github.com/amaumene/tvmaze-scraper/internal/models"
	"github.com/amaumene/tvmaze-scraper/internal/nfo"
	"github.com/amaumene/tvmaze-scraper/internal/services/tvmaze"
)

func parseShowID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a TVmaze id", ErrInvalidParam, s)
	}
	return id, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseUniqueIDs decodes a JSON object of provider -> id.
// Ids may be JSON strings or numbers.
func parseUniqueIDs(s string) (map[string]string, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: unique ids: %v", ErrInvalidParam, err)
	}

	ids := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			if val != "" {
				ids[strings.ToLower(k)] = val
			}
		case json.Number:
			ids[strings.ToLower(k)] = val.String()
		}
	}
	return ids, nil
}

// resolveExternal is ShowController.ResolveExternal with not-found reported as 0
func (d *Dispatcher) resolveExternal(ctx context.Context, ext models.ExternalID) (int, error) {
	id, err := d.shows.ResolveExternal(ctx, ext)
	if errors.Is(err, tvmaze.ErrNotFound) {
		d.logger.WithField("external_id", ext.String()).Debug("External id not known to TVmaze")
		return 0, nil
	}
	return id, err
}

// resolveUniqueIDs prefers the tvmaze id, then tvdb, then imdb
func (d *Dispatcher) resolveUniqueIDs(ctx context.Context, ids map[string]string) (int, error) {
	if v, ok := ids[mapper.IDTVmaze]; ok {
		return parseShowID(v)
	}
	for _, key := range []string{mapper.IDTVDB, nfo.ProviderTheTVDB, mapper.IDIMDB} {
		v, ok := ids[key]
		if !ok {
			continue
		}
		provider, err := models.ParseProvider(key)
		if err != nil {
			continue
		}
		id, err := d.resolveExternal(ctx, models.ExternalID{Provider: provider, Value: v})
		if err != nil || id != 0 {
			return id, err
		}
	}
	return 0, nil
}

func (d *Dispatcher) resolveURLMatch(ctx context.Context, m nfo.URLMatch) (int, error) {
	if m.Provider == nfo.ProviderTVmaze {
		return parseShowID(m.ID)
	}
	provider, err := models.ParseProvider(m.Provider)
	if err != nil {
		return 0, nil
	}
	return d.resolveExternal(ctx, models.ExternalID{Provider: provider, Value: m.ID})
}

// resolveEpisodeGuide finds the show id in an episodeguide value: a bare TVmaze id,
// a JSON object of unique ids, or a show page URL. 0 means unresolvable.
func (d *Dispatcher) resolveEpisodeGuide(ctx context.Context, guide string) (int, error) {
	guide = strings.TrimSpace(guide)
	switch {
	case strings.HasPrefix(guide, "{"):
		ids, err := parseUniqueIDs(guide)
		if err != nil {
			d.logger.WithError(err).Warn("Unreadable episodeguide")
			return 0, nil
		}
		return d.resolveUniqueIDs(ctx, ids)
	case isDigits(guide):
		return parseShowID(guide)
	default:
		m, ok := nfo.ParseURL(guide)
		if !ok {
			return 0, nil
		}
		return d.resolveURLMatch(ctx, m)
	}
}
