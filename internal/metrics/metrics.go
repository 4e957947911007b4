package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sentinelops"

// Metrics holds the service collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	IncidentsCreated  prometheus.Counter
	IncidentsCleared  prometheus.Counter
	IncidentsStored   prometheus.Gauge
	PersistErrors     *prometheus.CounterVec
	Generations       *prometheus.CounterVec
	GenerationFailure *prometheus.CounterVec
	HTTPRequests      *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		IncidentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "incidents_created_total",
			Help:      "Number of incidents recorded",
		}),
		IncidentsCleared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "incidents_cleared_total",
			Help:      "Number of clear-all operations",
		}),
		IncidentsStored: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "incidents_stored",
			Help:      "Incidents currently held by the store",
		}),
		PersistErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_errors_total",
			Help:      "Snapshot load/save failures by operation",
		}, []string{"op"}),
		Generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_total",
			Help:      "Text generation attempts by feature and outcome",
		}, []string{"feature", "outcome"}),
		GenerationFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_fallback_total",
			Help:      "Fallback texts served by feature and reason",
		}, []string{"feature", "reason"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "code"}),
	}
	reg.MustRegister(
		m.IncidentsCreated, m.IncidentsCleared, m.IncidentsStored,
		m.PersistErrors, m.Generations, m.GenerationFailure, m.HTTPRequests,
	)
	return m
}

func (m *Metrics) IncCreated(stored int) {
	if m == nil {
		return
	}
	m.IncidentsCreated.Inc()
	m.IncidentsStored.Set(float64(stored))
}

func (m *Metrics) IncCleared() {
	if m == nil {
		return
	}
	m.IncidentsCleared.Inc()
	m.IncidentsStored.Set(0)
}

func (m *Metrics) SetStored(n int) {
	if m == nil {
		return
	}
	m.IncidentsStored.Set(float64(n))
}

func (m *Metrics) IncPersistError(op string) {
	if m == nil {
		return
	}
	m.PersistErrors.WithLabelValues(op).Inc()
}

// ObserveGeneration records one generation attempt. reason is ignored when generated is true.
func (m *Metrics) ObserveGeneration(feature string, generated bool, reason string) {
	if m == nil {
		return
	}
	if generated {
		m.Generations.WithLabelValues(feature, "generated").Inc()
		return
	}
	m.Generations.WithLabelValues(feature, "fallback").Inc()
	m.GenerationFailure.WithLabelValues(feature, reason).Inc()
}

func (m *Metrics) IncHTTPRequest(route, code string) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, code).Inc()
}
