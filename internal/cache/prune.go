package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Stats describes the cache directory contents
type Stats struct {
	Entries int
	Expired int
	Corrupt int
	Bytes   int64
}

// Prune deletes expired and corrupt entries, plus temp files
// left behind by writers that died before renaming.
func (s *Store) Prune() (int, error) {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	removed := 0
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		name := f.Name()
		path := filepath.Join(s.dir, name)

		var reason string
		switch {
		case strings.HasSuffix(name, ".tmp"):
			info, err := f.Info()
			if err != nil || s.now().Sub(info.ModTime()) <= TTL {
				continue
			}
			reason = "orphaned temp file"
		case strings.HasSuffix(name, fileSuffix):
			e, err := s.readEntry(path)
			if err != nil {
				reason = "corrupt"
			} else if s.expired(e) {
				reason = "expired"
			} else {
				continue
			}
		default:
			continue
		}

		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.WithError(err).WithField("file", name).Warn("Failed to remove cache file")
			continue
		}
		s.memory.Delete(strings.TrimSuffix(name, fileSuffix))
		removed++
		s.logger.WithFields(logrus.Fields{
			"file":   name,
			"reason": reason,
		}).Debug("Removed cache file")
	}

	s.logger.WithField("removed", removed).Info("Cache prune completed")
	return removed, nil
}

// Stats scans the cache directory
func (s *Store) Stats() (Stats, error) {
	var st Stats
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return st, fmt.Errorf("failed to read cache directory: %w", err)
	}

	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), fileSuffix) {
			continue
		}
		st.Entries++
		if info, err := f.Info(); err == nil {
			st.Bytes += info.Size()
		}
		e, err := s.readEntry(filepath.Join(s.dir, f.Name()))
		switch {
		case err != nil:
			st.Corrupt++
		case s.expired(e):
			st.Expired++
		}
	}
	return st, nil
}
