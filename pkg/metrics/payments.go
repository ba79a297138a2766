package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PaymentMetrics records counters for the payment intent lifecycle.
type PaymentMetrics struct {
	intentsCreated *prometheus.CounterVec
	transitions    *prometheus.CounterVec
	rejections     *prometheus.CounterVec
}

// NewPaymentMetrics registers the payment metrics on the provided registerer.
func NewPaymentMetrics(reg prometheus.Registerer) *PaymentMetrics {
	if reg == nil {
		return &PaymentMetrics{}
	}
	intentsCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_intents_created_total",
		Help: "Payment intents created, labelled by payment method.",
	}, []string{"method"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_transitions_total",
		Help: "Applied webhook transitions, labelled by target status.",
	}, []string{"status"})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_webhook_rejections_total",
		Help: "Webhook events rejected before a transition, labelled by reason.",
	}, []string{"reason"})
	reg.MustRegister(intentsCreated, transitions, rejections)
	return &PaymentMetrics{
		intentsCreated: intentsCreated,
		transitions:    transitions,
		rejections:     rejections,
	}
}

// IncIntentsCreated increments the creation counter for the given method.
func (p *PaymentMetrics) IncIntentsCreated(method string) {
	if p == nil || p.intentsCreated == nil {
		return
	}
	p.intentsCreated.WithLabelValues(normalizeLabel(method)).Inc()
}

// IncTransition increments the transition counter for the target status.
func (p *PaymentMetrics) IncTransition(status string) {
	if p == nil || p.transitions == nil {
		return
	}
	p.transitions.WithLabelValues(normalizeLabel(status)).Inc()
}

// IncRejection increments the rejection counter for the given reason.
func (p *PaymentMetrics) IncRejection(reason string) {
	if p == nil || p.rejections == nil {
		return
	}
	p.rejections.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
