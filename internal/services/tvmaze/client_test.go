package tvmaze

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amaumene/tvmaze-scraper/internal/config"
	"github.com/amaumene/tvmaze-scraper/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const girlsShowJSON = `{
  "id": 139,
  "name": "Girls",
  "premiered": "2012-04-15",
  "status": "Ended",
  "genres": ["Drama", "Romance"],
  "summary": "<p>This Emmy winning series...</p>",
  "rating": {"average": 6.6},
  "network": {"id": 8, "name": "HBO", "country": {"name": "United States", "code": "US"}},
  "webChannel": null,
  "externals": {"tvrage": 30124, "thetvdb": 220411, "imdb": "tt1723816"},
  "image": {"medium": "https://img/medium.jpg", "original": "https://img/original.jpg"},
  "_embedded": {
    "cast": [],
    "seasons": [{"id": 1, "number": 1, "name": "", "image": null}],
    "crew": [],
    "episodes": [
      {"id": 11, "name": "Pilot", "season": 1, "number": 1, "airdate": "2012-04-15", "runtime": 30, "summary": null, "image": null},
      {"id": 12, "name": "Vagina Panic", "season": 1, "number": 2, "airdate": "2012-04-22", "runtime": 30, "summary": null, "image": null}
    ]
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *metrics.Metrics) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	m := metrics.New()
	cfg := &config.Config{BaseURL: srv.URL + "/", UserAgent: "test-agent"}
	return NewClient(cfg, srv.Client(), logger, m), m
}

func TestGetShowEmbedsAndProcessesEpisodes(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shows/139", r.URL.Path)
		assert.Equal(t, []string{"cast", "seasons", "episodes", "crew"}, r.URL.Query()["embed[]"])
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(girlsShowJSON))
	})

	show, err := client.GetShow(context.Background(), 139)
	require.NoError(t, err)

	assert.Equal(t, "Girls", show.Name)
	assert.Equal(t, "2012", show.PremieredYear())
	require.NotNil(t, show.Embedded)
	assert.Nil(t, show.Embedded.Episodes)
	require.Equal(t, 2, show.Episodes.Len())
	assert.Equal(t, 11, show.Episodes.Values()[0].ID)
	ep, ok := show.Episodes.Get(12)
	require.True(t, ok)
	assert.Equal(t, "Vagina Panic", ep.Name)
}

func TestSearchShows(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/shows", r.URL.Path)
		assert.Equal(t, "girls", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`[
		  {"score": 0.9, "show": {"id": 139, "name": "Girls", "premiered": "2012-04-15"}},
		  {"score": 0.5, "show": {"id": 999, "name": "Girls", "premiered": null}}
		]`))
	})

	results, err := client.SearchShows(context.Background(), "girls")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 139, results[0].Show.ID)
	assert.Equal(t, "", results[1].Show.PremieredYear())
}

func TestLookupShowNotFound(t *testing.T) {
	client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lookup/shows", r.URL.Path)
		assert.Equal(t, "tt0000000", r.URL.Query().Get("imdb"))
		http.NotFound(w, r)
	})

	_, err := client.LookupShow(context.Background(), "imdb", "tt0000000")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusNotFound, upstream.StatusCode)

	count, err := testutil.GatherAndCount(m.Gatherer(), "tvmaze_scraper_upstream_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLookupShowByTheTVDB(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "220411", r.URL.Query().Get("thetvdb"))
		_, _ = w.Write([]byte(`{"id": 139, "name": "Girls", "externals": {"thetvdb": 220411, "imdb": "tt1723816"}}`))
	})

	show, err := client.LookupShow(context.Background(), "thetvdb", "220411")
	require.NoError(t, err)
	assert.Equal(t, 139, show.ID)
	require.NotNil(t, show.Externals)
	require.NotNil(t, show.Externals.IMDB)
	assert.Equal(t, "tt1723816", *show.Externals.IMDB)
}

func TestGetEpisode(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/episodes/1", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": 1, "name": "Pilot", "season": 1, "number": 1, "airdate": "2013-06-24", "runtime": 60, "summary": "<p>x</p>", "image": null}`))
	})

	ep, err := client.GetEpisode(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Pilot", ep.Name)
	require.NotNil(t, ep.Number)
	assert.Equal(t, 1, *ep.Number)
	assert.Nil(t, ep.Image)
}

func TestServerErrorIsNotNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.GetShow(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusInternalServerError, upstream.StatusCode)
	assert.Equal(t, "boom", upstream.Body)
}

func TestMalformedBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	_, err := client.GetEpisode(context.Background(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")
}
