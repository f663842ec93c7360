package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// createTestMetrics creates metrics with a custom registry for testing.
// This avoids conflicts with the default registry.
func createTestMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "test"
	}

	return &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),
		AuthEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "auth",
				Name:      "events_total",
				Help:      "Total number of auth events",
			},
			[]string{"event"},
		),
		TeamEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "team",
				Name:      "events_total",
				Help:      "Total number of team membership events",
			},
			[]string{"event"},
		),
		ScopeDenials: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "team",
				Name:      "scope_denials_total",
				Help:      "Total number of cross-team access denials",
			},
		),
		DBQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "db",
				Name:      "query_duration_seconds",
				Help:      "Database query duration in seconds",
			},
			[]string{"operation"},
		),
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	m := createTestMetrics("test")

	m.RecordHTTPRequest("GET", "/api/v1/teams", 200, 50*time.Millisecond)
	m.RecordHTTPRequest("GET", "/api/v1/teams", 200, 30*time.Millisecond)
	m.RecordHTTPRequest("POST", "/api/v1/teams", 409, 10*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/teams", "2xx")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/teams", "4xx")))
}

func TestRecordTeamEvent(t *testing.T) {
	m := createTestMetrics("test")

	m.RecordTeamEvent("created")
	m.RecordTeamEvent("join_requested")
	m.RecordTeamEvent("join_requested")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.TeamEventsTotal.WithLabelValues("created")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.TeamEventsTotal.WithLabelValues("join_requested")))
}

func TestRecordScopeDenial(t *testing.T) {
	m := createTestMetrics("test")

	m.RecordScopeDenial()
	m.RecordScopeDenial()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ScopeDenials))
}

func TestStatusCodeToString(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{404, "4xx"},
		{500, "5xx"},
		{100, "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, statusCodeToString(tt.code))
	}
}
