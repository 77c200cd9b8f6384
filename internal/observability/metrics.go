package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the service.
type Metrics struct {
	AdvisoriesIssued *prometheus.CounterVec // labels: tier
	AdvisoryErrors   *prometheus.CounterVec // labels: stage={geocode,weather,uv,classify}
	EventsPublished  prometheus.Counter
	PublishErrors    prometheus.Counter

	// Weather provider metrics.
	ProviderRequests *prometheus.CounterVec   // labels: endpoint={geocode,weather,uv}, outcome={success,error,empty}
	ProviderDuration *prometheus.HistogramVec // labels: endpoint={geocode,weather,uv}
	GeocodeCache     *prometheus.CounterVec   // labels: result={hit,miss}

	// Questionnaire metrics.
	SessionsActive          prometheus.Gauge
	QuestionnairesCompleted *prometheus.CounterVec // labels: skin_type

	// Reminder metrics.
	ReminderActive prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		AdvisoriesIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sun_protection",
			Name:      "advisories_issued_total",
			Help:      "UV advisories issued, by risk tier.",
		}, []string{"tier"}),
		AdvisoryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sun_protection",
			Name:      "advisory_errors_total",
			Help:      "Advisory pipeline failures, by stage.",
		}, []string{"stage"}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sun_protection",
			Name:      "events_published_total",
			Help:      "Advisory events written to the Kafka topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sun_protection",
			Name:      "publish_errors_total",
			Help:      "Advisory events that failed to publish.",
		}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sun_protection",
			Name:      "provider_requests_total",
			Help:      "Weather provider API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sun_protection",
			Name:      "provider_request_duration_seconds",
			Help:      "Weather provider API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"endpoint"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sun_protection",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sun_protection",
			Name:      "sessions_active",
			Help:      "Questionnaire sessions currently held in memory.",
		}),
		QuestionnairesCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sun_protection",
			Name:      "questionnaires_completed_total",
			Help:      "Completed questionnaires, by resulting skin type.",
		}, []string{"skin_type"}),
		ReminderActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sun_protection",
			Name:      "reminder_active",
			Help:      "1 when the reapply reminder is in the notifying state, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.AdvisoriesIssued,
		m.AdvisoryErrors,
		m.EventsPublished,
		m.PublishErrors,
		m.ProviderRequests,
		m.ProviderDuration,
		m.GeocodeCache,
		m.SessionsActive,
		m.QuestionnairesCompleted,
		m.ReminderActive,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		AdvisoriesIssued:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "sun_protection", Name: "advisories_issued_total"}, []string{"tier"}),
		AdvisoryErrors:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "sun_protection", Name: "advisory_errors_total"}, []string{"stage"}),
		EventsPublished:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sun_protection", Name: "events_published_total"}),
		PublishErrors:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sun_protection", Name: "publish_errors_total"}),
		ProviderRequests:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "sun_protection", Name: "provider_requests_total"}, []string{"endpoint", "outcome"}),
		ProviderDuration:        prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "sun_protection", Name: "provider_request_duration_seconds"}, []string{"endpoint"}),
		GeocodeCache:            prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "sun_protection", Name: "geocode_cache_total"}, []string{"result"}),
		SessionsActive:          prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "sun_protection", Name: "sessions_active"}),
		QuestionnairesCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "sun_protection", Name: "questionnaires_completed_total"}, []string{"skin_type"}),
		ReminderActive:          prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "sun_protection", Name: "reminder_active"}),
	}
}
