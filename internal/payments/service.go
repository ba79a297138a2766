package payments

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/velopay/payments-backend/pkg/enums"
	pkgerrors "github.com/velopay/payments-backend/pkg/errors"
	"github.com/velopay/payments-backend/pkg/metrics"
)

// Service defines the payment intent operations the HTTP layer consumes.
type Service interface {
	CreateIntent(ctx context.Context, params CreateIntentParams) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
	ApplyWebhookEvent(ctx context.Context, event WebhookEvent) (*Intent, error)
}

// Defaults backfill optional creation attributes.
type Defaults struct {
	Amount   decimal.Decimal
	Currency string
	Provider string
}

// CreateIntentParams carries the validated creation request. Amount and
// Currency are optional; defaults apply when they are absent.
type CreateIntentParams struct {
	OrderID  string
	Method   enums.PaymentMethod
	Amount   *decimal.Decimal
	Currency string
}

// WebhookEvent is a simulated gateway callback. OrderID and Metadata are
// echoed by gateways but never persisted: the orderId recorded at creation
// stays authoritative.
type WebhookEvent struct {
	Type      enums.WebhookEventType
	PaymentID string
	OrderID   string
	Metadata  map[string]any
}

type service struct {
	store    *Store
	defaults Defaults
	metrics  *metrics.PaymentMetrics
}

// NewService wires the payment intent service.
func NewService(store *Store, defaults Defaults, pm *metrics.PaymentMetrics) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "payments store required")
	}
	if strings.TrimSpace(defaults.Currency) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "default currency required")
	}
	if strings.TrimSpace(defaults.Provider) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "provider required")
	}
	return &service{store: store, defaults: defaults, metrics: pm}, nil
}

func (s *service) CreateIntent(ctx context.Context, params CreateIntentParams) (*Intent, error) {
	if strings.TrimSpace(params.OrderID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orderId is required")
	}
	if !params.Method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method").
			WithDetails(map[string]any{"method": params.Method.String()})
	}

	amount := s.defaults.Amount
	if params.Amount != nil {
		if params.Amount.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must not be negative")
		}
		amount = *params.Amount
	}

	currency := strings.TrimSpace(params.Currency)
	if currency == "" {
		currency = s.defaults.Currency
	}

	intent := s.store.Create(CreateParams{
		OrderID:  params.OrderID,
		Method:   params.Method,
		Amount:   amount,
		Currency: currency,
		Provider: s.defaults.Provider,
	})

	s.metrics.IncIntentsCreated(params.Method.String())
	return &intent, nil
}

func (s *service) GetIntent(ctx context.Context, id string) (*Intent, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment id required")
	}
	intent, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

func (s *service) ApplyWebhookEvent(ctx context.Context, event WebhookEvent) (*Intent, error) {
	if strings.TrimSpace(event.PaymentID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "paymentId is required")
	}

	intent, err := s.store.ApplyEvent(event.PaymentID, event.Type)
	if err != nil {
		switch pkgerrors.As(err).Code() {
		case pkgerrors.CodeNotFound:
			s.metrics.IncRejection("not_found")
		case pkgerrors.CodeUnsupportedEvent:
			s.metrics.IncRejection("unsupported_event")
		}
		return nil, err
	}

	s.metrics.IncTransition(intent.Status.String())
	return &intent, nil
}
