package enums

import "fmt"

// WebhookEventType names the gateway callback events that drive payment
// status transitions.
type WebhookEventType string

const (
	WebhookEventPaymentSucceeded  WebhookEventType = "payment_intent.succeeded"
	WebhookEventPaymentFailed     WebhookEventType = "payment_intent.failed"
	WebhookEventPaymentProcessing WebhookEventType = "payment_intent.processing"
	WebhookEventPaymentCanceled   WebhookEventType = "payment_intent.canceled"
	WebhookEventPaymentRefunded   WebhookEventType = "payment_intent.refunded"
)

// statusByEvent is the total event-to-status mapping. Every recognized event
// must have a target status here; TestWebhookEventMappingIsTotal enforces it.
var statusByEvent = map[WebhookEventType]PaymentStatus{
	WebhookEventPaymentSucceeded:  PaymentStatusSucceeded,
	WebhookEventPaymentFailed:     PaymentStatusFailed,
	WebhookEventPaymentProcessing: PaymentStatusProcessing,
	WebhookEventPaymentCanceled:   PaymentStatusCancelled,
	WebhookEventPaymentRefunded:   PaymentStatusRefunded,
}

var validWebhookEventTypes = []WebhookEventType{
	WebhookEventPaymentSucceeded,
	WebhookEventPaymentFailed,
	WebhookEventPaymentProcessing,
	WebhookEventPaymentCanceled,
	WebhookEventPaymentRefunded,
}

// String implements fmt.Stringer.
func (w WebhookEventType) String() string {
	return string(w)
}

// IsValid reports whether the value is a recognized WebhookEventType.
func (w WebhookEventType) IsValid() bool {
	_, ok := statusByEvent[w]
	return ok
}

// TargetStatus returns the payment status the event maps to. The second
// return is false for unrecognized events.
func (w WebhookEventType) TargetStatus() (PaymentStatus, bool) {
	status, ok := statusByEvent[w]
	return status, ok
}

// ParseWebhookEventType converts raw input into a WebhookEventType.
func ParseWebhookEventType(value string) (WebhookEventType, error) {
	for _, candidate := range validWebhookEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid webhook event type %q", value)
}

// WebhookEventTypes returns the recognized event names in declaration order.
func WebhookEventTypes() []WebhookEventType {
	out := make([]WebhookEventType, len(validWebhookEventTypes))
	copy(out, validWebhookEventTypes)
	return out
}
