package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// FulfillmentMetrics records checkout and ticket-delivery outcomes.
type FulfillmentMetrics struct {
	checkouts    *prometheus.CounterVec
	fulfillments *prometheus.CounterVec
	sinkFailures prometheus.Counter
	duration     prometheus.Histogram
}

// NewFulfillmentMetrics registers the workflow metrics on the provided registerer.
func NewFulfillmentMetrics(reg prometheus.Registerer) *FulfillmentMetrics {
	if reg == nil {
		return &FulfillmentMetrics{}
	}
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_sessions_total",
		Help: "Hosted checkout sessions requested from the payment provider.",
	}, []string{"outcome"})
	fulfillments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillments_total",
		Help: "Ticket fulfillment attempts.",
	}, []string{"outcome"})
	sinkFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sink_append_failures_total",
		Help: "Guest-list sink appends that failed and were skipped.",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fulfillment_duration_seconds",
		Help:    "End-to-end duration of ticket fulfillment.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(checkouts, fulfillments, sinkFailures, duration)
	return &FulfillmentMetrics{
		checkouts:    checkouts,
		fulfillments: fulfillments,
		sinkFailures: sinkFailures,
		duration:     duration,
	}
}

// IncCheckout counts one checkout-session attempt by outcome.
func (m *FulfillmentMetrics) IncCheckout(outcome string) {
	if m == nil || m.checkouts == nil {
		return
	}
	m.checkouts.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncFulfillment counts one fulfillment attempt by outcome.
func (m *FulfillmentMetrics) IncFulfillment(outcome string) {
	if m == nil || m.fulfillments == nil {
		return
	}
	m.fulfillments.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncSinkFailure counts one skipped guest-list append.
func (m *FulfillmentMetrics) IncSinkFailure() {
	if m == nil || m.sinkFailures == nil {
		return
	}
	m.sinkFailures.Inc()
}

// ObserveFulfillment records how long one fulfillment took.
func (m *FulfillmentMetrics) ObserveFulfillment(duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.Observe(duration.Seconds())
}

func normalizeLabel(outcome string) string {
	if outcome == "" {
		return "unknown"
	}
	return outcome
}
