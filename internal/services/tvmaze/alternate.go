package tvmaze

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// EpisodeOrder names an episode numbering. Everything but OrderDefault
// is a TVmaze alternate list flag.
type EpisodeOrder string

const (
	OrderDefault           EpisodeOrder = "default"
	OrderDVDRelease        EpisodeOrder = "dvd_release"
	OrderVerbatim          EpisodeOrder = "verbatim_order"
	OrderCountryPremiere   EpisodeOrder = "country_premiere"
	OrderStreamingPremiere EpisodeOrder = "streaming_premiere"
	OrderBroadcastPremiere EpisodeOrder = "broadcast_premiere"
	OrderLanguagePremiere  EpisodeOrder = "language_premiere"
)

// episodeOrders is indexed by the host's episode_order setting value
var episodeOrders = []EpisodeOrder{
	OrderDefault,
	OrderDVDRelease,
	OrderVerbatim,
	OrderCountryPremiere,
	OrderStreamingPremiere,
	OrderBroadcastPremiere,
	OrderLanguagePremiere,
}

// ParseEpisodeOrder accepts an order name or its setting index ("0".."6").
// An empty string is the default order.
func ParseEpisodeOrder(s string) (EpisodeOrder, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return OrderDefault, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n >= len(episodeOrders) {
			return "", fmt.Errorf("unknown episode order %d", n)
		}
		return episodeOrders[n], nil
	}
	for _, o := range episodeOrders {
		if string(o) == s {
			return o, nil
		}
	}
	return "", fmt.Errorf("unknown episode order %q", s)
}

// AlternateList is one entry of /shows/{id}/alternatelists
type AlternateList struct {
	ID                int  `json:"id"`
	DVDRelease        bool `json:"dvd_release"`
	VerbatimOrder     bool `json:"verbatim_order"`
	CountryPremiere   bool `json:"country_premiere"`
	StreamingPremiere bool `json:"streaming_premiere"`
	BroadcastPremiere bool `json:"broadcast_premiere"`
	LanguagePremiere  bool `json:"language_premiere"`
}

// Has reports whether the list carries the given order
func (l AlternateList) Has(order EpisodeOrder) bool {
	switch order {
	case OrderDVDRelease:
		return l.DVDRelease
	case OrderVerbatim:
		return l.VerbatimOrder
	case OrderCountryPremiere:
		return l.CountryPremiere
	case OrderStreamingPremiere:
		return l.StreamingPremiere
	case OrderBroadcastPremiere:
		return l.BroadcastPremiere
	case OrderLanguagePremiere:
		return l.LanguagePremiere
	default:
		return false
	}
}

// alternateEpisode places one episode in an alternate list
type alternateEpisode struct {
	ID       int `json:"id"`
	Season   int `json:"season"`
	Number   int `json:"number"`
	Embedded struct {
		Episodes []Episode `json:"episodes"`
	} `json:"_embedded"`
}

// AlternateLists returns the alternate episode lists of a show
func (c *Client) AlternateLists(ctx context.Context, showID int) ([]AlternateList, error) {
	var lists []AlternateList
	path := "/shows/" + strconv.Itoa(showID) + "/alternatelists"
	if err := c.getJSON(ctx, "alternatelists", path, nil, &lists); err != nil {
		return nil, fmt.Errorf("failed to get alternate lists of show %d: %w", showID, err)
	}
	return lists, nil
}

// AlternateEpisodes loads an alternate list with its episodes embedded.
// Each episode takes the list's season and number; the result is sorted by both.
func (c *Client) AlternateEpisodes(ctx context.Context, listID int) ([]Episode, error) {
	var raw []alternateEpisode
	path := "/alternatelists/" + strconv.Itoa(listID) + "/alternateepisodes"
	if err := c.getJSON(ctx, "alternateepisodes", path, url.Values{"embed": {"episodes"}}, &raw); err != nil {
		return nil, fmt.Errorf("failed to get alternate list %d: %w", listID, err)
	}

	episodes := make([]Episode, 0, len(raw))
	for _, alt := range raw {
		if len(alt.Embedded.Episodes) == 0 {
			continue
		}
		ep := alt.Embedded.Episodes[0]
		number := alt.Number
		ep.Season = alt.Season
		ep.Number = &number
		episodes = append(episodes, ep)
	}
	sort.SliceStable(episodes, func(i, j int) bool {
		if episodes[i].Season != episodes[j].Season {
			return episodes[i].Season < episodes[j].Season
		}
		return *episodes[i].Number < *episodes[j].Number
	})
	return episodes, nil
}

// OrderedEpisodes returns the show's episodes in an alternate order.
// nil means the show has no list for that order.
func (c *Client) OrderedEpisodes(ctx context.Context, showID int, order EpisodeOrder) ([]Episode, error) {
	if order == OrderDefault {
		return nil, nil
	}
	lists, err := c.AlternateLists(ctx, showID)
	if err != nil {
		return nil, err
	}
	for _, l := range lists {
		if l.Has(order) {
			c.logger.WithFields(logrus.Fields{
				"show_id": showID,
				"order":   order,
				"list_id": l.ID,
			}).Debug("Using alternate episode list")
			return c.AlternateEpisodes(ctx, l.ID)
		}
	}
	return nil, nil
}
