package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Push delivery outcomes.
const (
	PushOutcomeDelivered = "delivered"
	PushOutcomeGone      = "gone"
	PushOutcomeFailed    = "failed"
)

// PushMetrics tracks notification fan-out and push delivery.
type PushMetrics struct {
	deliveries *prometheus.CounterVec
	duration   prometheus.Histogram
	fanouts    prometheus.Counter
	recipients prometheus.Histogram
}

// NewPushMetrics registers the push delivery metrics on the provided registerer.
func NewPushMetrics(reg prometheus.Registerer) *PushMetrics {
	if reg == nil {
		return &PushMetrics{}
	}
	deliveries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "push_deliveries_total",
		Help:      "Push delivery attempts by outcome.",
	}, []string{"outcome"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "push_delivery_duration_seconds",
		Help:      "Duration of individual push deliveries in seconds.",
		Buckets:   prometheus.DefBuckets,
	})
	fanouts := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_fanouts_total",
		Help:      "Announcement fan-out runs.",
	})
	recipients := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_fanout_recipients",
		Help:      "Recipients notified per fan-out run.",
		Buckets:   []float64{0, 1, 5, 10, 50, 100, 500, 1000},
	})
	reg.MustRegister(deliveries, duration, fanouts, recipients)
	return &PushMetrics{
		deliveries: deliveries,
		duration:   duration,
		fanouts:    fanouts,
		recipients: recipients,
	}
}

// ObserveDelivery records one push attempt with its outcome and latency.
func (p *PushMetrics) ObserveDelivery(outcome string, duration time.Duration) {
	if p == nil || p.deliveries == nil {
		return
	}
	p.deliveries.WithLabelValues(normalizeLabel(outcome)).Inc()
	p.duration.Observe(duration.Seconds())
}

// ObserveFanout records one fan-out run and how many recipients it reached.
func (p *PushMetrics) ObserveFanout(recipients int) {
	if p == nil || p.fanouts == nil {
		return
	}
	p.fanouts.Inc()
	p.recipients.Observe(float64(recipients))
}
