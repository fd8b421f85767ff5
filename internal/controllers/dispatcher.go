package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/amaumene/tvmaze-scraper/internal/host"
	"github.com/amaumene/tvmaze-scraper/internal/metrics"
	"github.com/amaumene/tvmaze-scraper/internal/services/tvmaze"
	"github.com/sirupsen/logrus"
)

var (
	// ErrUnknownAction is returned for an action the scraper does not implement
	ErrUnknownAction = errors.New("unknown action")
	// ErrMissingParam is returned when a required parameter is absent
	ErrMissingParam = errors.New("missing required parameter")
	// ErrInvalidParam is returned when a parameter cannot be decoded
	ErrInvalidParam = errors.New("invalid parameter")
)

// Action names
const (
	ActionFind              = "find"
	ActionNFOURL            = "nfourl"
	ActionGetDetails        = "getdetails"
	ActionGetEpisodeList    = "getepisodelist"
	ActionGetEpisodeDetails = "getepisodedetails"
	ActionGetArtwork        = "getartwork"
)

type actionFunc func(ctx context.Context, params url.Values) error

// Dispatcher routes one host call to its action
type Dispatcher struct {
	shows    *ShowController
	client   *tvmaze.Client
	dir      host.Directory
	defaults Settings
	logger   *logrus.Logger
	metrics  *metrics.Metrics
}

// NewDispatcher creates a new dispatcher. defaults apply to calls
// without pathSettings.
func NewDispatcher(shows *ShowController, client *tvmaze.Client, dir host.Directory, defaults Settings, logger *logrus.Logger, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		shows:    shows,
		client:   client,
		dir:      dir,
		defaults: defaults,
		logger:   logger,
		metrics:  m,
	}
}

// Dispatch parses the host parameter string and runs the requested action.
// A known action always ends the directory once it succeeds; an unknown one emits nothing.
func (d *Dispatcher) Dispatch(ctx context.Context, paramstring string) error {
	params, err := url.ParseQuery(strings.TrimPrefix(paramstring, "?"))
	if err != nil {
		return fmt.Errorf("%w: failed to parse parameters: %v", ErrInvalidParam, err)
	}

	action := params.Get("action")
	run, name := d.route(action)
	if run == nil {
		d.metrics.Action("unknown", "error")
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	d.logger.WithFields(logrus.Fields{
		"action": name,
		"params": paramstring,
	}).Debug("Dispatching host call")

	if err := run(ctx, params); err != nil {
		d.metrics.Action(name, "error")
		return fmt.Errorf("%s failed: %w", name, err)
	}
	if err := d.dir.EndOfDirectory(); err != nil {
		d.metrics.Action(name, "error")
		return err
	}

	d.metrics.Action(name, "ok")
	return nil
}

func (d *Dispatcher) route(action string) (actionFunc, string) {
	switch {
	case action == ActionFind:
		return d.find, ActionFind
	case strings.EqualFold(action, ActionNFOURL):
		return d.nfoURL, ActionNFOURL
	case action == ActionGetDetails:
		return d.getDetails, ActionGetDetails
	case action == ActionGetEpisodeList:
		return d.getEpisodeList, ActionGetEpisodeList
	case action == ActionGetEpisodeDetails:
		return d.getEpisodeDetails, ActionGetEpisodeDetails
	case action == ActionGetArtwork:
		return d.getArtwork, ActionGetArtwork
	default:
		return nil, ""
	}
}

func requireParam(params url.Values, key string) (string, error) {
	v := params.Get(key)
	if v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingParam, key)
	}
	return v, nil
}

// notResolved reports a missing show or episode to the host
func (d *Dispatcher) notResolved(err error, fields logrus.Fields) error {
	d.logger.WithError(err).WithFields(fields).Info("Not found on TVmaze")
	return d.dir.SetResolvedURL(false, nil)
}
