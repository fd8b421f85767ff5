package host

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Directory is the host's directory-listing protocol
type Directory interface {
	AddDirectoryItem(url string, item ListItem, folder bool) error
	SetResolvedURL(succeeded bool, item *ListItem) error
	EndOfDirectory() error
}

// Record types written by Emitter
const (
	RecordDirectoryItem  = "directory_item"
	RecordResolved       = "resolved"
	RecordEndOfDirectory = "end_of_directory"
)

// Record is one JSON line of host output
type Record struct {
	Type      string    `json:"type"`
	Handle    int       `json:"handle"`
	URL       string    `json:"url,omitempty"`
	Item      *ListItem `json:"item,omitempty"`
	Folder    *bool     `json:"folder,omitempty"`
	Succeeded *bool     `json:"succeeded,omitempty"`
}

// Emitter writes host records as JSON lines.
// One host call drives one Emitter; it is not safe for concurrent use.
type Emitter struct {
	enc    *json.Encoder
	handle int
	logger *logrus.Logger
}

// NewEmitter creates an emitter for the given host handle
func NewEmitter(w io.Writer, handle int, logger *logrus.Logger) *Emitter {
	return &Emitter{
		enc:    json.NewEncoder(w),
		handle: handle,
		logger: logger,
	}
}

func (e *Emitter) write(r Record) error {
	r.Handle = e.handle
	if err := e.enc.Encode(r); err != nil {
		return fmt.Errorf("failed to write %s record: %w", r.Type, err)
	}
	e.logger.WithFields(logrus.Fields{
		"type": r.Type,
		"url":  r.URL,
	}).Debug("Host record written")
	return nil
}

// AddDirectoryItem emits one directory entry
func (e *Emitter) AddDirectoryItem(url string, item ListItem, folder bool) error {
	return e.write(Record{Type: RecordDirectoryItem, URL: url, Item: &item, Folder: &folder})
}

// SetResolvedURL emits the single resolved item; item may be nil on failure
func (e *Emitter) SetResolvedURL(succeeded bool, item *ListItem) error {
	return e.write(Record{Type: RecordResolved, Item: item, Succeeded: &succeeded})
}

// EndOfDirectory closes the listing
func (e *Emitter) EndOfDirectory() error {
	return e.write(Record{Type: RecordEndOfDirectory})
}
