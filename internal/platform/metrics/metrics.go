package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Outbound call latency by service and outcome (ok, http_error, transport)
	UpstreamLatency *prometheus.HistogramVec

	// Which ladder rung produced the usable response, per probe
	LadderRung *prometheus.CounterVec

	// Zoning classifications by dialect and status
	Classifications *prometheus.CounterVec

	// Parcel resolutions by query kind and outcome
	Resolutions *prometheus.CounterVec

	// Acts archived or rejected
	Archives *prometheus.CounterVec
}

// New creates and registers all metrics on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		UpstreamLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "parcelgate_upstream_duration_seconds",
			Help:    "Duration of calls to cadastral and map services",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}, []string{"service", "outcome"}),

		LadderRung: f.NewCounterVec(prometheus.CounterOpts{
			Name: "parcelgate_probe_ladder_rung_total",
			Help: "Ladder rung that produced usable content; rung 0 means none did",
		}, []string{"probe", "rung"}),

		Classifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "parcelgate_zoning_classifications_total",
			Help: "Zoning responses classified by dialect and resulting status",
		}, []string{"dialect", "status"}),

		Resolutions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "parcelgate_resolutions_total",
			Help: "Parcel query resolutions by query kind and outcome",
		}, []string{"kind", "outcome"}),

		Archives: f.NewCounterVec(prometheus.CounterOpts{
			Name: "parcelgate_act_archives_total",
			Help: "Planning act archive attempts by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveUpstream records the duration of an outbound call.
func (m *Metrics) ObserveUpstream(service, outcome string, d time.Duration) {
	if m != nil {
		m.UpstreamLatency.WithLabelValues(service, outcome).Observe(d.Seconds())
	}
}

// IncrementLadderRung records which request combination answered.
func (m *Metrics) IncrementLadderRung(probe, rung string) {
	if m != nil {
		m.LadderRung.WithLabelValues(probe, rung).Inc()
	}
}

// IncrementClassification records a dialect match.
func (m *Metrics) IncrementClassification(dialect, status string) {
	if m != nil {
		m.Classifications.WithLabelValues(dialect, status).Inc()
	}
}

// IncrementResolution records a parcel resolution outcome.
func (m *Metrics) IncrementResolution(kind, outcome string) {
	if m != nil {
		m.Resolutions.WithLabelValues(kind, outcome).Inc()
	}
}

// IncrementArchive records an archive attempt.
func (m *Metrics) IncrementArchive(outcome string) {
	if m != nil {
		m.Archives.WithLabelValues(outcome).Inc()
	}
}
