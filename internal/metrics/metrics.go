package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "crm"

// Recorder owns the service's Prometheus registry and counters.
type Recorder struct {
	registry *prometheus.Registry

	RenewalUpdates *prometheus.CounterVec
	StatusWrites   *prometheus.CounterVec
	SweepExpired   prometheus.Counter
	SweepRuns      *prometheus.CounterVec
	SweepDuration  prometheus.Histogram
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()

	r := &Recorder{
		registry: reg,
		RenewalUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renewal_updates_total",
			Help:      "Product history renewal updates committed, by mode",
		}, []string{"mode"}),
		StatusWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subscription_status_writes_total",
			Help:      "Subscription statuses rewritten during reconciliation, by new status",
		}, []string{"status"}),
		SweepExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expiry_sweep_expired_total",
			Help:      "Subscriptions marked expired by the periodic sweep",
		}),
		SweepRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expiry_sweep_runs_total",
			Help:      "Expiry sweep runs, by result",
		}, []string{"result"}),
		SweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "expiry_sweep_duration_seconds",
			Help:      "Duration of expiry sweep runs in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		r.RenewalUpdates,
		r.StatusWrites,
		r.SweepExpired,
		r.SweepRuns,
		r.SweepDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) RenewalUpdated(mode string) {
	r.RenewalUpdates.WithLabelValues(mode).Inc()
}

func (r *Recorder) StatusWritten(status string) {
	r.StatusWrites.WithLabelValues(status).Inc()
}

// SweepFinished records one sweep run. A failed run records no expiries.
func (r *Recorder) SweepFinished(expired int64, seconds float64, err error) {
	r.SweepDuration.Observe(seconds)
	if err != nil {
		r.SweepRuns.WithLabelValues("error").Inc()
		return
	}
	r.SweepRuns.WithLabelValues("ok").Inc()
	r.SweepExpired.Add(float64(expired))
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))
}
