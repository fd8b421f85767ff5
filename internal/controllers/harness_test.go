package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/amaumene/tvmaze-scraper/internal/cache"
	"github.com/amaumene/tvmaze-scraper/internal/config"
	"github.com/amaumene/tvmaze-scraper/internal/host"
	"github.com/amaumene/tvmaze-scraper/internal/models"
	"github.com/amaumene/tvmaze-scraper/internal/services/imdb"
	"github.com/amaumene/tvmaze-scraper/internal/services/tvmaze"
	"github.com/amaumene/tvmaze-scraper/internal/utils"
	"github.com/stretchr/testify/require"
)

const gotShowJSON = `{
  "id": 82,
  "name": "Game of Thrones",
  "premiered": "2011-04-17",
  "status": "Ended",
  "genres": ["Drama", "Adventure", "Fantasy"],
  "summary": "<p>Based on the bestselling book series <b>A Song of Ice and Fire</b>.</p>",
  "rating": {"average": 8.9},
  "network": {"id": 8, "name": "HBO", "country": {"name": "United States", "code": "US"}},
  "webChannel": null,
  "externals": {"tvrage": 24493, "thetvdb": 121361, "imdb": "tt0944947"},
  "image": {"medium": "https://img/got-m.jpg", "original": "https://img/got-o.jpg"},
  "_embedded": {
    "cast": [
      {"person": {"id": 14, "name": "Peter Dinklage", "image": {"medium": "https://img/peter.jpg", "original": ""}},
       "character": {"id": 1, "name": "Tyrion Lannister", "image": null}}
    ],
    "seasons": [
      {"id": 307, "number": 1, "name": "", "image": {"medium": "https://img/s1-m.jpg", "original": "https://img/s1-o.jpg"}}
    ],
    "crew": [
      {"type": "Creator", "person": {"id": 1, "name": "David Benioff", "image": null}}
    ],
    "episodes": [
      {"id": 4952, "name": "Winter is Coming", "season": 1, "number": 1, "airdate": "2011-04-17", "runtime": 60,
       "summary": "<p>Lord Eddard Stark is troubled.</p>", "image": {"medium": "https://img/e1-m.jpg", "original": "https://img/e1-o.jpg"}},
      {"id": 4953, "name": "The Kingsroad", "season": 1, "number": 2, "airdate": "2011-04-24", "runtime": 60,
       "summary": null, "image": null}
    ]
  }
}`

const gotLookupJSON = `{"id": 82, "name": "Game of Thrones", "externals": {"tvrage": 24493, "thetvdb": 121361, "imdb": "tt0944947"}}`

const girlsSearchJSON = `[
  {"score": 0.91, "show": {"id": 139, "name": "Girls", "premiered": "2012-04-15"}},
  {"score": 0.85, "show": {"id": 41734, "name": "Girls", "premiered": "2012-10-02"}},
  {"score": 0.70, "show": {"id": 23542, "name": "Girls", "premiered": "2007-01-05"}},
  {"score": 0.50, "show": {"id": 50000, "name": "Girls", "premiered": null}}
]`

type route struct {
	status int
	body   string
}

func ok(body string) route { return route{status: http.StatusOK, body: body} }

// fakeTVmaze serves fixed responses keyed by "path?rawquery" or by path alone.
// Unknown requests get a 404.
type fakeTVmaze struct {
	mu     sync.Mutex
	routes map[string]route
	hits   map[string]int
	total  int
}

func (f *fakeTVmaze) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.total++
	f.hits[r.URL.Path]++

	rt, found := f.routes[r.URL.Path+"?"+r.URL.RawQuery]
	if !found {
		rt, found = f.routes[r.URL.Path]
	}
	if !found {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(rt.status)
	_, _ = w.Write([]byte(rt.body))
}

func (f *fakeTVmaze) requests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.total
}

func (f *fakeTVmaze) hitCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

type harness struct {
	dispatcher *Dispatcher
	rec        *host.Recorder
	store      *cache.Store
	db         *models.Database
	api        *fakeTVmaze
	imdb       *fakeTVmaze
}

func newHarness(t *testing.T, routes map[string]route) *harness {
	t.Helper()
	return newHarnessWithIMDB(t, routes, nil)
}

// newHarnessWithIMDB also serves IMDb title pages from imdbRoutes
func newHarnessWithIMDB(t *testing.T, routes, imdbRoutes map[string]route) *harness {
	t.Helper()

	api := &fakeTVmaze{routes: routes, hits: make(map[string]int)}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	imdbAPI := &fakeTVmaze{routes: imdbRoutes, hits: make(map[string]int)}
	imdbSrv := httptest.NewServer(imdbAPI)
	t.Cleanup(imdbSrv.Close)

	logger := utils.NewDiscardLogger()

	dataDir := t.TempDir()
	db, err := models.NewDatabase(filepath.Join(dataDir, "id-map.db"), logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{BaseURL: srv.URL, IMDBBaseURL: imdbSrv.URL, UserAgent: "test"}
	client := tvmaze.NewClient(cfg, srv.Client(), logger, nil)
	ratings := imdb.NewClient(cfg, imdbSrv.Client(), logger, nil)
	store := cache.New(dataDir, logger, nil)
	rec := &host.Recorder{}

	shows := NewShowController(client, ratings, store, db, logger)
	defaults := Settings{EpisodeOrder: tvmaze.OrderDefault, DefaultRating: "tvmaze"}
	return &harness{
		dispatcher: NewDispatcher(shows, client, rec, defaults, logger, nil),
		rec:        rec,
		store:      store,
		db:         db,
		api:        api,
		imdb:       imdbAPI,
	}
}

func (h *harness) dispatch(paramstring string) error {
	return h.dispatcher.Dispatch(context.Background(), paramstring)
}

func decodeShow(t *testing.T, data string) *tvmaze.Show {
	t.Helper()
	var show tvmaze.Show
	require.NoError(t, json.Unmarshal([]byte(data), &show))
	show.ProcessEpisodes()
	return &show
}

// resolved returns the single resolved record
func (h *harness) resolved(t *testing.T) host.Record {
	t.Helper()
	var found []host.Record
	for _, r := range h.rec.Records {
		if r.Type == host.RecordResolved {
			found = append(found, r)
		}
	}
	require.Len(t, found, 1)
	return found[0]
}
