package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestPaymentMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewPaymentMetrics(reg)

	metrics.IncIntentsCreated("card")
	metrics.IncIntentsCreated("card")
	metrics.IncTransition("succeeded")
	metrics.IncRejection("unsupported_event")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "payment_intents_created_total", "method", "card"); err != nil {
		t.Fatalf("fetch created: %v", err)
	} else if got != 2 {
		t.Fatalf("expected created=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "payment_transitions_total", "status", "succeeded"); err != nil {
		t.Fatalf("fetch transitions: %v", err)
	} else if got != 1 {
		t.Fatalf("expected transitions=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "payment_webhook_rejections_total", "reason", "unsupported_event"); err != nil {
		t.Fatalf("fetch rejections: %v", err)
	} else if got != 1 {
		t.Fatalf("expected rejections=1, got %f", got)
	}
}

func TestPaymentMetricsNilReceiverIsNoop(t *testing.T) {
	var metrics *PaymentMetrics
	metrics.IncIntentsCreated("card")
	metrics.IncTransition("succeeded")
	metrics.IncRejection("not_found")

	empty := NewPaymentMetrics(nil)
	empty.IncIntentsCreated("")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
