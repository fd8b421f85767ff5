package models

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/amaumene/tvmaze-scraper/internal/services/tvmaze"
	"github.com/sirupsen/logrus"
	"github.com/timshannon/bolthold"
)

// Mapping is the stored value of one external id
type Mapping struct {
	ShowID    int
	CreatedAt time.Time
}

// RecordMapping stores ext -> showID unless ext is already mapped.
// It reports whether a new mapping was written.
func (db *Database) RecordMapping(ext ExternalID, showID int) (bool, error) {
	if db == nil {
		return false, ErrStoreUnavailable
	}

	err := db.store.Insert(ext.Key(), &Mapping{ShowID: showID, CreatedAt: time.Now()})
	if errors.Is(err, bolthold.ErrKeyExists) {
		db.metrics.IDMapOp("record", "exists")
		return false, nil
	}
	if err != nil {
		db.metrics.IDMapOp("record", "error")
		return false, fmt.Errorf("failed to record mapping %s: %w", ext, err)
	}

	db.metrics.IDMapOp("record", "written")
	db.logger.WithFields(logrus.Fields{
		"external_id": ext.String(),
		"show_id":     showID,
	}).Debug("Recorded id mapping")
	return true, nil
}

// ResolveMapping returns the show id stored for ext.
// Read failures are logged and reported as absent.
func (db *Database) ResolveMapping(ext ExternalID) (int, bool) {
	if db == nil {
		return 0, false
	}

	var m Mapping
	err := db.store.Get(ext.Key(), &m)
	if errors.Is(err, bolthold.ErrNotFound) {
		db.metrics.IDMapOp("resolve", "miss")
		return 0, false
	}
	if err != nil {
		db.logger.WithError(err).WithField("external_id", ext.String()).Warn("Failed to read id mapping")
		db.metrics.IDMapOp("resolve", "error")
		return 0, false
	}

	db.metrics.IDMapOp("resolve", "hit")
	return m.ShowID, true
}

// RecordShow records the imdb and thetvdb ids of a show document.
func (db *Database) RecordShow(show *tvmaze.Show) error {
	for _, ext := range ExternalIDsOf(show) {
		if _, err := db.RecordMapping(ext, show.ID); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of stored mappings
func (db *Database) Count() (int, error) {
	if db == nil {
		return 0, ErrStoreUnavailable
	}
	n, err := db.store.Count(&Mapping{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count mappings: %w", err)
	}
	return int(n), nil
}

// ExternalIDsOf lists the mappable external ids a show document carries
func ExternalIDsOf(show *tvmaze.Show) []ExternalID {
	if show == nil || show.Externals == nil {
		return nil
	}
	var ids []ExternalID
	if show.Externals.IMDB != nil && *show.Externals.IMDB != "" {
		ids = append(ids, ExternalID{Provider: ProviderIMDB, Value: *show.Externals.IMDB})
	}
	if show.Externals.TheTVDB != nil {
		ids = append(ids, ExternalID{Provider: ProviderTheTVDB, Value: strconv.Itoa(*show.Externals.TheTVDB)})
	}
	return ids
}
