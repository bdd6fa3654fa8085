package berth

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Resolution outcomes recorded by MetricsHook.
const (
	OutcomeResolved    = "resolved"
	OutcomeUnavailable = "unavailable"
)

// MetricsHook exports container activity as Prometheus metrics:
//
//	berth_resolutions_total{service,outcome}
//	berth_resolution_duration_seconds{service}
//	berth_factory_invocations_total{service,outcome}
type MetricsHook struct {
	resolutions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	factories   *prometheus.CounterVec
}

// NewMetricsHook creates the collectors and registers them with reg.
func NewMetricsHook(reg prometheus.Registerer) (*MetricsHook, error) {
	h := &MetricsHook{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "berth",
			Name:      "resolutions_total",
			Help:      "Service resolutions by outcome.",
		}, []string{"service", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "berth",
			Name:      "resolution_duration_seconds",
			Help:      "Time spent resolving a service, including its dependencies.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"service"}),
		factories: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "berth",
			Name:      "factory_invocations_total",
			Help:      "Factory invocations by outcome.",
		}, []string{"service", "outcome"}),
	}

	for _, collector := range []prometheus.Collector{h.resolutions, h.duration, h.factories} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register berth metrics: %w", err)
		}
	}

	return h, nil
}

// BeforeResolve implements Hook.
func (h *MetricsHook) BeforeResolve(ID) error {
	return nil
}

// AfterResolve implements Hook.
func (h *MetricsHook) AfterResolve(id ID, _ any, err error, elapsed time.Duration) {
	service := id.FullName()

	h.resolutions.WithLabelValues(service, outcome(err)).Inc()
	h.duration.WithLabelValues(service).Observe(elapsed.Seconds())
}

// BeforeCreate implements Hook.
func (h *MetricsHook) BeforeCreate(ID) error {
	return nil
}

// AfterCreate implements Hook.
func (h *MetricsHook) AfterCreate(id ID, _ any, err error, _ time.Duration) {
	h.factories.WithLabelValues(id.FullName(), outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeUnavailable
	}

	return OutcomeResolved
}
