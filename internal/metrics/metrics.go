// Package metrics holds the Prometheus collectors of the API.
//
// Collectors are registered on an injected Registerer so that tests can use
// a fresh registry. A nil *Metrics is valid and records nothing.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rulebook"

// Metrics is the set of collectors shared by the services.
type Metrics struct {
	// SearchQueries counts search requests. Labels: category, environment
	SearchQueries *prometheus.CounterVec
	// SearchResults observes the number of results per search.
	SearchResults prometheus.Histogram

	// RepositoryCalls counts backend calls. Labels: op, status (ok, error, unavailable)
	RepositoryCalls *prometheus.CounterVec
	// RepositoryCallDuration observes backend latency. Labels: op
	RepositoryCallDuration *prometheus.HistogramVec

	// IndexRecords is the number of indexed records per kind.
	IndexRecords *prometheus.GaugeVec
	// IndexBuilds counts index builds. Labels: status (ok, error)
	IndexBuilds *prometheus.CounterVec

	// TreeSessions is the number of open disclosure tree sessions.
	TreeSessions prometheus.Gauge

	// HTTPRequests counts served requests. Labels: route, status
	HTTPRequests *prometheus.CounterVec
}

// New creates and registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SearchQueries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_queries_total",
			Help:      "Total number of search queries by category and environment",
		}, []string{"category", "environment"}),
		SearchResults: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of results returned per search query",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}),
		RepositoryCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repository_calls_total",
			Help:      "Total number of content repository calls by operation and status",
		}, []string{"op", "status"}),
		RepositoryCallDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "repository_call_duration_seconds",
			Help:      "Content repository call latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		IndexRecords: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "index_records",
			Help:      "Number of records in the search index by kind",
		}, []string{"kind"}),
		IndexBuilds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "index_builds_total",
			Help:      "Total number of search index builds by status",
		}, []string{"status"}),
		TreeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tree_sessions",
			Help:      "Number of open disclosure tree sessions",
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route pattern and status code",
		}, []string{"route", "status"}),
	}
}

// ObserveSearch records one search query and its result count.
func (m *Metrics) ObserveSearch(category, environment string, results int) {
	if m == nil {
		return
	}
	m.SearchQueries.WithLabelValues(category, environment).Inc()
	m.SearchResults.Observe(float64(results))
}

// ObserveRepositoryCall records the outcome and latency of one backend call.
func (m *Metrics) ObserveRepositoryCall(op, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.RepositoryCalls.WithLabelValues(op, status).Inc()
	m.RepositoryCallDuration.WithLabelValues(op).Observe(d.Seconds())
}

// ObserveIndexBuild records a build attempt. counts is nil on failure.
func (m *Metrics) ObserveIndexBuild(err error, counts map[string]int) {
	if m == nil {
		return
	}
	if err != nil {
		m.IndexBuilds.WithLabelValues("error").Inc()
		return
	}
	m.IndexBuilds.WithLabelValues("ok").Inc()
	for kind, n := range counts {
		m.IndexRecords.WithLabelValues(kind).Set(float64(n))
	}
}

// SetTreeSessions sets the number of open tree sessions.
func (m *Metrics) SetTreeSessions(n int) {
	if m == nil {
		return
	}
	m.TreeSessions.Set(float64(n))
}

// ObserveHTTPRequest counts one served request.
func (m *Metrics) ObserveHTTPRequest(route string, status int) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}
