package berth

import (
	"time"

	"github.com/xraph/go-utils/metrics"
)

// CollectorHook records container activity on a go-utils metrics collector,
// for applications that already export their metrics through one. It records
// the same series as MetricsHook.
type CollectorHook struct {
	collector metrics.Metrics
}

// NewCollectorHook creates a hook writing to collector.
//
// Example:
//
//	collector, _ := berth.GetMetrics(c)
//	c.Use(berth.NewCollectorHook(collector))
func NewCollectorHook(collector metrics.Metrics) *CollectorHook {
	return &CollectorHook{collector: collector}
}

// BeforeResolve implements Hook.
func (h *CollectorHook) BeforeResolve(ID) error {
	return nil
}

// AfterResolve implements Hook.
func (h *CollectorHook) AfterResolve(id ID, _ any, err error, elapsed time.Duration) {
	service := metrics.WithLabel("service", id.FullName())

	h.collector.Counter("berth_resolutions_total",
		service,
		metrics.WithLabel("outcome", outcome(err)),
	).Inc()

	h.collector.Histogram("berth_resolution_duration_seconds",
		service,
		metrics.WithUnit("seconds"),
	).Observe(elapsed.Seconds())
}

// BeforeCreate implements Hook.
func (h *CollectorHook) BeforeCreate(ID) error {
	return nil
}

// AfterCreate implements Hook.
func (h *CollectorHook) AfterCreate(id ID, _ any, err error, _ time.Duration) {
	h.collector.Counter("berth_factory_invocations_total",
		metrics.WithLabel("service", id.FullName()),
		metrics.WithLabel("outcome", outcome(err)),
	).Inc()
}
