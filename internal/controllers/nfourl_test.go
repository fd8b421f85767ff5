package controllers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNFOURLTVmazeLink(t *testing.T) {
	h := newHarness(t, nil)

	params := url.Values{"action": {"NfoUrl"}, "nfo": {"https://www.tvmaze.com/shows/82/game-of-thrones"}}
	require.NoError(t, h.dispatch(params.Encode()))

	items := h.rec.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "82", items[0].URL)
	assert.Equal(t, map[string]string{"tvmaze": "82"}, items[0].Item.UniqueIDs.IDs)
	assert.Equal(t, "tvmaze", items[0].Item.UniqueIDs.Default)
	assert.JSONEq(t, `{"tvmaze": "82"}`, items[0].Item.Info.EpisodeGuide)
	assert.Zero(t, h.api.requests())
	assert.Equal(t, 1, h.rec.EndCount())
}

func TestNFOURLLegacyURLParam(t *testing.T) {
	h := newHarness(t, map[string]route{"/lookup/shows?imdb=tt0944947": ok(gotLookupJSON)})

	params := url.Values{"action": {"nfourl"}, "url": {"https://www.imdb.com/title/tt0944947/"}}
	require.NoError(t, h.dispatch(params.Encode()))

	items := h.rec.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "82", items[0].URL)
}

func TestNFOURLXMLByIMDB(t *testing.T) {
	h := newHarness(t, map[string]route{"/lookup/shows?imdb=tt0944947": ok(gotLookupJSON)})

	nfo := `<tvshow><title>Game of Thrones</title><uniqueid type="imdb">tt0944947</uniqueid></tvshow>`
	params := url.Values{"action": {"nfourl"}, "nfo": {nfo}}
	require.NoError(t, h.dispatch(params.Encode()))

	items := h.rec.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "82", items[0].URL)
}

func TestNFOURLXMLTitleSearch(t *testing.T) {
	h := newHarness(t, map[string]route{"/search/shows?q=Girls": ok(girlsSearchJSON)})

	nfo := `<tvshow><title>Girls</title><year>2007</year></tvshow>`
	params := url.Values{"action": {"nfourl"}, "nfo": {nfo}}
	require.NoError(t, h.dispatch(params.Encode()))

	items := h.rec.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "23542", items[0].URL)
}

func TestNFOURLXMLAmbiguousTitle(t *testing.T) {
	h := newHarness(t, map[string]route{"/search/shows?q=Girls": ok(girlsSearchJSON)})

	nfo := `<tvshow><title>Girls</title><year>2012</year></tvshow>`
	params := url.Values{"action": {"nfourl"}, "nfo": {nfo}}
	require.NoError(t, h.dispatch(params.Encode()))

	assert.Empty(t, h.rec.Items())
	assert.Equal(t, 1, h.rec.EndCount())
}

func TestNFOURLEpisodeDetails(t *testing.T) {
	h := newHarness(t, nil)

	nfo := `<episodedetails><title>Winter is Coming</title><uniqueid type="tvmaze">4952</uniqueid></episodedetails>`
	params := url.Values{"action": {"nfourl"}, "nfo": {nfo}}
	require.NoError(t, h.dispatch(params.Encode()))

	items := h.rec.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "4952", items[0].URL)
	assert.Empty(t, items[0].Item.Info.EpisodeGuide)
}

func TestNFOURLNothingFound(t *testing.T) {
	h := newHarness(t, nil)

	require.NoError(t, h.dispatch("action=nfourl&nfo=plain+text"))
	assert.Empty(t, h.rec.Items())
	assert.Equal(t, 1, h.rec.EndCount())
}
