package controllers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/velopay/payments-backend/api/responses"
	"github.com/velopay/payments-backend/api/validators"
	"github.com/velopay/payments-backend/internal/payments"
	"github.com/velopay/payments-backend/pkg/enums"
	pkgerrors "github.com/velopay/payments-backend/pkg/errors"
	"github.com/velopay/payments-backend/pkg/logger"
)

type createPaymentIntentRequest struct {
	OrderID  string           `json:"orderId" validate:"required"`
	Method   string           `json:"method" validate:"required,oneof=card wallet upi cod"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Currency string           `json:"currency,omitempty"`
}

type paymentIntentResponse struct {
	ID           string      `json:"id"`
	OrderID      string      `json:"orderId"`
	Amount       json.Number `json:"amount"`
	Currency     string      `json:"currency"`
	Status       string      `json:"status"`
	Provider     string      `json:"provider"`
	ClientSecret string      `json:"clientSecret"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func newPaymentIntentResponse(intent *payments.Intent) paymentIntentResponse {
	return paymentIntentResponse{
		ID:           intent.ID,
		OrderID:      intent.OrderID,
		Amount:       json.Number(intent.Amount.String()),
		Currency:     intent.Currency,
		Status:       intent.Status.String(),
		Provider:     intent.Provider,
		ClientSecret: intent.ClientSecret,
		CreatedAt:    intent.CreatedAt,
		UpdatedAt:    intent.UpdatedAt,
	}
}

// CreatePaymentIntent handles POST /payments/intent.
func CreatePaymentIntent(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		var payload createPaymentIntentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.Method)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		intent, err := svc.CreateIntent(ctx, payments.CreateIntentParams{
			OrderID:  payload.OrderID,
			Method:   method,
			Amount:   payload.Amount,
			Currency: payload.Currency,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			ctx = logg.WithPaymentID(ctx, intent.ID)
			ctx = logg.WithOrderID(ctx, intent.OrderID)
			logg.Info(ctx, "payment intent created")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newPaymentIntentResponse(intent))
	}
}

// GetPayment handles GET /payments/{paymentId}.
func GetPayment(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		paymentID := strings.TrimSpace(chi.URLParam(r, "paymentId"))
		if paymentID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "payment id required"))
			return
		}

		intent, err := svc.GetIntent(ctx, paymentID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, newPaymentIntentResponse(intent))
	}
}
