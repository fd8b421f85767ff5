package controllers

import (
	"net/url"
	"testing"

	"github.com/amaumene/tvmaze-scraper/internal/services/tvmaze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Broadcast order is 4952 then 4953; the DVD list swaps them and is served unsorted.
const gotAlternateListsJSON = `[
  {"id": 5, "url": "https://www.tvmaze.com/alternatelists/5", "dvd_release": false, "verbatim_order": true},
  {"id": 7, "url": "https://www.tvmaze.com/alternatelists/7", "dvd_release": true, "verbatim_order": false}
]`

const gotDVDEpisodesJSON = `[
  {"id": 71, "season": 1, "number": 2, "_embedded": {"episodes": [
    {"id": 4952, "name": "Winter is Coming", "season": 1, "number": 1, "airdate": "2011-04-17", "runtime": 60, "summary": null, "image": null}]}},
  {"id": 72, "season": 1, "number": 1, "_embedded": {"episodes": [
    {"id": 4953, "name": "The Kingsroad", "season": 1, "number": 2, "airdate": "2011-04-24", "runtime": 60, "summary": null, "image": null}]}}
]`

func intPtr(i int) *int { return &i }

func dvdRoutes() map[string]route {
	return map[string]route{
		"/shows/82":                                          ok(gotShowJSON),
		"/shows/82/alternatelists":                           ok(gotAlternateListsJSON),
		"/alternatelists/7/alternateepisodes?embed=episodes": ok(gotDVDEpisodesJSON),
	}
}

func withSettings(action string, settings string, extra url.Values) string {
	params := url.Values{"action": {action}, "pathSettings": {settings}}
	for k, v := range extra {
		params[k] = v
	}
	return params.Encode()
}

func TestGetEpisodeListAlternateOrder(t *testing.T) {
	h := newHarness(t, dvdRoutes())

	call := withSettings("getepisodelist", `{"episode_order": 1}`, url.Values{"url": {"82"}})
	require.NoError(t, h.dispatch(call))

	items := h.rec.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "The Kingsroad", items[0].Item.Label)
	assert.Equal(t, "Winter is Coming", items[1].Item.Label)

	ref, err := DecodeEpisodeRef(items[0].URL)
	require.NoError(t, err)
	assert.Equal(t, 4953, ref.EpisodeID)
	assert.Equal(t, 1, ref.Season)
	assert.Equal(t, 1, *ref.Number)
	assert.Equal(t, 1, h.rec.EndCount())

	h.rec.Records = nil
	require.NoError(t, h.dispatch(call))
	assert.Len(t, h.rec.Items(), 2)
	assert.Equal(t, 1, h.api.hitCount("/shows/82/alternatelists"))
	assert.Equal(t, 1, h.api.hitCount("/alternatelists/7/alternateepisodes"))
}

func TestGetEpisodeListDefaultOrderSkipsAlternateLists(t *testing.T) {
	h := newHarness(t, dvdRoutes())

	require.NoError(t, h.dispatch(withSettings("getepisodelist", `{"episode_order": 0}`, url.Values{"url": {"82"}})))

	items := h.rec.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Winter is Coming", items[0].Item.Label)
	assert.Zero(t, h.api.hitCount("/shows/82/alternatelists"))
}

func TestGetEpisodeListOrderWithoutList(t *testing.T) {
	h := newHarness(t, dvdRoutes())

	call := withSettings("getepisodelist", `{"episode_order": "language_premiere"}`, url.Values{"url": {"82"}})
	require.NoError(t, h.dispatch(call))

	items := h.rec.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Winter is Coming", items[0].Item.Label)

	h.rec.Records = nil
	require.NoError(t, h.dispatch(call))
	assert.Equal(t, 1, h.api.hitCount("/shows/82/alternatelists"))
}

func TestGetEpisodeDetailsAlternateOrder(t *testing.T) {
	h := newHarness(t, dvdRoutes())

	ref := EpisodeRef{ShowID: 82, EpisodeID: 4952, Season: 1, Number: intPtr(2)}
	require.NoError(t, h.dispatch(withSettings("getepisodedetails", `{"episode_order": 1}`, url.Values{"url": {ref.Encode()}})))

	rec := h.resolved(t)
	require.True(t, *rec.Succeeded)
	assert.Equal(t, "Winter is Coming", rec.Item.Label)
	require.NotNil(t, rec.Item.Info.Episode)
	assert.Equal(t, 2, *rec.Item.Info.Episode)
	assert.Zero(t, h.api.hitCount("/episodes/4952"))
}

func TestGetDetailsIMDBDefaultRating(t *testing.T) {
	page := `<html><script type="application/ld+json">{"aggregateRating":{"ratingValue":9.2,"ratingCount":2300000}}</script></html>`
	h := newHarnessWithIMDB(t, map[string]route{"/shows/82": ok(gotShowJSON)}, map[string]route{"/title/tt0944947/": ok(page)})

	require.NoError(t, h.dispatch(withSettings("getdetails", `{"default_rating": "IMDB"}`, url.Values{"url": {"82"}})))

	rec := h.resolved(t)
	require.True(t, *rec.Succeeded)
	require.Len(t, rec.Item.Ratings, 2)
	assert.Equal(t, "tvmaze", rec.Item.Ratings[0].Source)
	assert.False(t, rec.Item.Ratings[0].Default)
	assert.Equal(t, "imdb", rec.Item.Ratings[1].Source)
	assert.Equal(t, 9.2, rec.Item.Ratings[1].Value)
	assert.Equal(t, 2300000, rec.Item.Ratings[1].Votes)
	assert.True(t, rec.Item.Ratings[1].Default)

	cached, found := h.store.Get(82)
	require.True(t, found)
	require.NotNil(t, cached.IMDBRating)
	assert.Equal(t, 9.2, cached.IMDBRating.Value)
}

func TestGetDetailsIMDBUnavailable(t *testing.T) {
	h := newHarness(t, map[string]route{"/shows/82": ok(gotShowJSON)})

	require.NoError(t, h.dispatch(withSettings("getdetails", `{"default_rating": "imdb"}`, url.Values{"url": {"82"}})))

	rec := h.resolved(t)
	require.True(t, *rec.Succeeded)
	require.Len(t, rec.Item.Ratings, 1)
	assert.Equal(t, "tvmaze", rec.Item.Ratings[0].Source)
	assert.True(t, rec.Item.Ratings[0].Default)
	assert.Equal(t, 1, h.imdb.hitCount("/title/tt0944947/"))
}

func TestSettingsMerge(t *testing.T) {
	h := newHarness(t, nil)
	d := h.dispatcher

	s := d.settings(url.Values{})
	assert.Equal(t, tvmaze.OrderDefault, s.EpisodeOrder)
	assert.Equal(t, "tvmaze", s.DefaultRating)

	s = d.settings(url.Values{"pathSettings": {`{"episode_order": 2, "default_rating": "IMDB"}`}})
	assert.Equal(t, tvmaze.OrderVerbatim, s.EpisodeOrder)
	assert.Equal(t, "imdb", s.DefaultRating)

	s = d.settings(url.Values{"pathSettings": {`{"episode_order": "dvd_release"}`}})
	assert.Equal(t, tvmaze.OrderDVDRelease, s.EpisodeOrder)

	s = d.settings(url.Values{"pathSettings": {`{"episode_order": 42, "default_rating": "metacritic"}`}})
	assert.Equal(t, tvmaze.OrderDefault, s.EpisodeOrder)
	assert.Equal(t, "tvmaze", s.DefaultRating)

	s = d.settings(url.Values{"pathSettings": {`{not json`}})
	assert.Equal(t, tvmaze.OrderDefault, s.EpisodeOrder)
}
