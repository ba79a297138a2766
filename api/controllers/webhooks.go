package controllers

import (
	"net/http"

	"github.com/velopay/payments-backend/api/responses"
	"github.com/velopay/payments-backend/api/validators"
	"github.com/velopay/payments-backend/internal/payments"
	"github.com/velopay/payments-backend/pkg/enums"
	pkgerrors "github.com/velopay/payments-backend/pkg/errors"
	"github.com/velopay/payments-backend/pkg/logger"
)

type webhookEventRequest struct {
	// Type is deliberately not constrained here: the store reports an
	// unsupported type only after confirming the payment exists.
	Type      string         `json:"type" validate:"required"`
	PaymentID string         `json:"paymentId" validate:"required"`
	OrderID   string         `json:"orderId,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// PaymentWebhook handles POST /payments/webhook, the simulated gateway
// callback. A production gateway integration would verify signatures and
// security headers before anything else; that layer is stubbed out here.
func PaymentWebhook(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		var payload webhookEventRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			ctx = logg.WithPaymentID(ctx, payload.PaymentID)
			ctx = logg.WithField(ctx, "event_type", payload.Type)
		}

		intent, err := svc.ApplyWebhookEvent(ctx, payments.WebhookEvent{
			Type:      enums.WebhookEventType(payload.Type),
			PaymentID: payload.PaymentID,
			OrderID:   payload.OrderID,
			Metadata:  payload.Metadata,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			ctx = logg.WithField(ctx, "status", intent.Status.String())
			logg.Info(ctx, "webhook event applied")
		}
		responses.WriteSuccess(w, newPaymentIntentResponse(intent))
	}
}
