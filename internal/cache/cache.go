package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/amaumene/tvmaze-scraper/internal/metrics"
	"github.com/amaumene/tvmaze-scraper/internal/services/tvmaze"
	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// TTL is how long a cached show document stays valid
const TTL = 3 * time.Hour

const fileSuffix = ".json"

// entry is the on-disk form of one cached show
type entry struct {
	Timestamp time.Time    `json:"timestamp"`
	Show      *tvmaze.Show `json:"show"`
}

// Store caches full show documents, one JSON file per show id.
// Reads never fail: anything unusable is reported as a miss.
type Store struct {
	dir     string
	memory  *gocache.Cache
	logger  *logrus.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// New creates a cache rooted at dir. The directory must exist.
func New(dir string, logger *logrus.Logger, m *metrics.Metrics) *Store {
	return &Store{
		dir:     dir,
		memory:  gocache.New(TTL, 0),
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+fileSuffix)
}

func orderedKey(showID int, order tvmaze.EpisodeOrder) string {
	return strconv.Itoa(showID) + "-" + string(order)
}

func (s *Store) expired(e *entry) bool {
	return s.now().Sub(e.Timestamp) > TTL
}

// Get returns the cached show if present and younger than TTL
func (s *Store) Get(showID int) (*tvmaze.Show, bool) {
	return s.get(strconv.Itoa(showID), s.logger.WithField("show_id", showID))
}

// GetOrdered returns the cached show whose episodes follow an alternate order
func (s *Store) GetOrdered(showID int, order tvmaze.EpisodeOrder) (*tvmaze.Show, bool) {
	return s.get(orderedKey(showID, order), s.logger.WithFields(logrus.Fields{
		"show_id": showID,
		"order":   order,
	}))
}

func (s *Store) get(key string, log *logrus.Entry) (*tvmaze.Show, bool) {
	if v, ok := s.memory.Get(key); ok {
		e := v.(*entry)
		if !s.expired(e) {
			s.metrics.CacheLookup("hit")
			return e.Show, true
		}
		s.memory.Delete(key)
	}

	e, err := s.readEntry(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug("Show not in cache")
			s.metrics.CacheLookup("miss")
		} else {
			log.WithError(err).Debug("Ignoring unreadable cache entry")
			s.metrics.CacheLookup("error")
		}
		return nil, false
	}

	if s.expired(e) {
		log.WithField("cached_at", e.Timestamp).Debug("Cache entry expired")
		s.metrics.CacheLookup("stale")
		return nil, false
	}

	s.memory.Set(key, e, gocache.DefaultExpiration)
	s.metrics.CacheLookup("hit")
	log.Debug("Show served from cache")
	return e.Show, true
}

// Put stores a show, replacing any previous entry.
// The file is written to a temp name and renamed into place.
func (s *Store) Put(show *tvmaze.Show) error {
	if show == nil {
		return fmt.Errorf("cannot cache nil show")
	}
	return s.put(strconv.Itoa(show.ID), show)
}

// PutOrdered stores a show whose episodes follow an alternate order
func (s *Store) PutOrdered(show *tvmaze.Show, order tvmaze.EpisodeOrder) error {
	if show == nil {
		return fmt.Errorf("cannot cache nil show")
	}
	return s.put(orderedKey(show.ID, order), show)
}

func (s *Store) put(key string, show *tvmaze.Show) error {
	e := &entry{Timestamp: s.now(), Show: show}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close cache file: %w", err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move cache file into place: %w", err)
	}

	s.memory.Set(key, e, gocache.DefaultExpiration)
	s.logger.WithField("key", key).Debug("Show cached")
	return nil
}

func (s *Store) readEntry(path string) (*entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("corrupt cache entry: %w", err)
	}
	if e.Show == nil || e.Timestamp.IsZero() {
		return nil, fmt.Errorf("incomplete cache entry")
	}
	return &e, nil
}
