package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters collected during one scraper invocation.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	actions          *prometheus.CounterVec
	upstreamRequests *prometheus.CounterVec
	cacheLookups     *prometheus.CounterVec
	idMapOps         *prometheus.CounterVec
}

// New creates a registry with all scraper counters registered
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tvmaze_scraper",
			Name:      "actions_total",
			Help:      "Host actions dispatched, by action and outcome.",
		}, []string{"action", "outcome"}),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tvmaze_scraper",
			Name:      "upstream_requests_total",
			Help:      "TVmaze API requests, by endpoint and HTTP status.",
		}, []string{"endpoint", "status"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tvmaze_scraper",
			Name:      "cache_lookups_total",
			Help:      "Show cache lookups, by result (hit, miss, stale, error).",
		}, []string{"result"}),
		idMapOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tvmaze_scraper",
			Name:      "id_map_operations_total",
			Help:      "External ID map operations, by operation and result.",
		}, []string{"op", "result"}),
	}

	m.registry.MustRegister(m.actions, m.upstreamRequests, m.cacheLookups, m.idMapOps)
	return m
}

// Action counts one dispatched action
func (m *Metrics) Action(action, outcome string) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(action, outcome).Inc()
}

// UpstreamRequest counts one TVmaze request; status 0 means a transport failure
func (m *Metrics) UpstreamRequest(endpoint string, status int) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
}

// CacheLookup counts one show cache read
func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// IDMapOp counts one id-map read or write
func (m *Metrics) IDMapOp(op, result string) {
	if m == nil {
		return
	}
	m.idMapOps.WithLabelValues(op, result).Inc()
}

// Gatherer exposes the registry, mainly for tests
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the current counters in the text exposition format,
// suitable for the node-exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
