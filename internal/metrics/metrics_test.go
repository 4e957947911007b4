package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveGeneration(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveGeneration("explain", true, "")
	m.ObserveGeneration("explain", false, "error")
	m.ObserveGeneration("oracle", false, "unconfigured")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Generations.WithLabelValues("explain", "generated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Generations.WithLabelValues("explain", "fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GenerationFailure.WithLabelValues("explain", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GenerationFailure.WithLabelValues("oracle", "unconfigured")))
}

func TestStoreCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncCreated(1)
	m.IncCreated(2)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.IncidentsCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.IncidentsStored))

	m.IncCleared()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IncidentsCleared))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.IncidentsStored))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncCreated(1)
		m.IncCleared()
		m.SetStored(3)
		m.IncPersistError("save")
		m.ObserveGeneration("explain", false, "error")
		m.IncHTTPRequest("/api/health", "200")
	})
}
