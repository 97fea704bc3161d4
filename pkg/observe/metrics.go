package observe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/talkdeck/talkdeck/pkg/ui"
)

// MetricsConfig configures metric registration.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "talkdeck").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for load duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures metric registration.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "talkdeck",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors for store activity.
//
// Metrics collected:
//   - talkdeck_loads_total: counter of talk loads by outcome
//   - talkdeck_load_duration_seconds: histogram of load duration
//   - talkdeck_notifications_total: counter of notifications by type
//   - talkdeck_persist_failures_total: counter of failed preference writes
type Metrics struct {
	loadsTotal      *prometheus.CounterVec
	loadDuration    prometheus.Histogram
	notifications   *prometheus.CounterVec
	persistFailures prometheus.Counter
}

// NewMetrics registers the collectors. Registering twice against the
// same registry panics, per prometheus convention.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		loadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "loads_total",
			Help:        "Total number of talk loads by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		loadDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "load_duration_seconds",
			Help:        "Talk load duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "notifications_total",
			Help:        "Total number of notifications shown by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),

		persistFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "persist_failures_total",
			Help:        "Total number of failed preference writes",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// RecordLoad records one load attempt and its duration.
func (m *Metrics) RecordLoad(seconds float64, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.loadsTotal.WithLabelValues(status).Inc()
	m.loadDuration.Observe(seconds)
}

// ObserveNotification counts a shown notification. Shaped to plug into
// ui.WithNotifyObserver.
func (m *Metrics) ObserveNotification(n ui.Notification) {
	m.notifications.WithLabelValues(string(n.Type)).Inc()
}

// ObservePersistError counts a failed durable write. Shaped to plug
// into prefs.WithPersistErrorObserver.
func (m *Metrics) ObservePersistError(error) {
	m.persistFailures.Inc()
}
