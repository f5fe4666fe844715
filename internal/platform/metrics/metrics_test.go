package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveUpstream("uldk", "ok", time.Second)
		m.IncrementLadderRung("zoning", "1")
		m.IncrementClassification("rowset", "covered")
		m.IncrementResolution("exact_id", "found")
		m.IncrementArchive("stored")
	})
}

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementClassification("rowset", "covered")
	m.IncrementClassification("rowset", "covered")
	m.IncrementResolution("free_text", "empty")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Classifications.WithLabelValues("rowset", "covered")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Resolutions.WithLabelValues("free_text", "empty")))
}
