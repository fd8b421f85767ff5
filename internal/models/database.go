package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/amaumene/tvmaze-scraper/internal/metrics"
	"github.com/sirupsen/logrus"
	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// ErrStoreUnavailable is returned by writes on a Database that failed to open
var ErrStoreUnavailable = errors.New("id map store unavailable")

// Database wraps the bolthold store holding the external id map.
// A nil *Database behaves as an empty, read-only store.
type Database struct {
	store   *bolthold.Store
	logger  *logrus.Logger
	metrics *metrics.Metrics
}

// NewDatabase opens (or creates) the id map file.
// Another process holding the lock makes this fail after one second.
func NewDatabase(path string, logger *logrus.Logger, m *metrics.Metrics) (*Database, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{store: store, logger: logger, metrics: m}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	if db == nil {
		return nil
	}
	return db.store.Close()
}
