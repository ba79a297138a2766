package payments

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velopay/payments-backend/pkg/enums"
	pkgerrors "github.com/velopay/payments-backend/pkg/errors"
)

func testCreateParams() CreateParams {
	return CreateParams{
		OrderID:  "ord-1",
		Method:   enums.PaymentMethodCard,
		Amount:   decimal.NewFromFloat(100.0),
		Currency: "INR",
		Provider: "mockpay",
	}
}

func TestStoreCreateAssignsIdentity(t *testing.T) {
	store := NewStore()

	intent := store.Create(testCreateParams())

	require.NotEmpty(t, intent.ID)
	require.True(t, strings.HasPrefix(intent.ClientSecret, "pi_"+intent.ID+"_secret_"))
	assert.Equal(t, enums.PaymentStatusRequiresConfirmation, intent.Status)
	assert.Equal(t, "mockpay", intent.Provider)
	assert.True(t, intent.CreatedAt.Equal(intent.UpdatedAt))
	assert.Equal(t, time.UTC, intent.CreatedAt.Location())
}

func TestStoreCreateIDsAreUnique(t *testing.T) {
	store := NewStore()

	seen := make(map[string]bool)
	secrets := make(map[string]bool)
	for i := 0; i < 500; i++ {
		intent := store.Create(testCreateParams())
		require.False(t, seen[intent.ID], "duplicate id %s", intent.ID)
		require.False(t, secrets[intent.ClientSecret], "duplicate client secret")
		seen[intent.ID] = true
		secrets[intent.ClientSecret] = true
	}
	assert.Equal(t, 500, store.Len())
}

func TestStoreGetReturnsSnapshot(t *testing.T) {
	store := NewStore()
	created := store.Create(testCreateParams())

	got, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	// Mutating the returned copy must not leak into the store.
	got.Status = enums.PaymentStatusFailed
	again, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentStatusRequiresConfirmation, again.Status)
}

func TestStoreGetUnknownID(t *testing.T) {
	store := NewStore()

	_, err := store.Get("missing")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestStoreApplyEventMapsTargets(t *testing.T) {
	tests := []struct {
		event  enums.WebhookEventType
		target enums.PaymentStatus
	}{
		{enums.WebhookEventPaymentSucceeded, enums.PaymentStatusSucceeded},
		{enums.WebhookEventPaymentFailed, enums.PaymentStatusFailed},
		{enums.WebhookEventPaymentProcessing, enums.PaymentStatusProcessing},
		{enums.WebhookEventPaymentCanceled, enums.PaymentStatusCancelled},
		{enums.WebhookEventPaymentRefunded, enums.PaymentStatusRefunded},
	}

	for _, tt := range tests {
		t.Run(tt.event.String(), func(t *testing.T) {
			store := NewStore()
			created := store.Create(testCreateParams())

			updated, err := store.ApplyEvent(created.ID, tt.event)
			require.NoError(t, err)
			assert.Equal(t, tt.target, updated.Status)
			assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))
		})
	}
}

func TestStoreApplyEventUnknownPayment(t *testing.T) {
	store := NewStore()

	// Existence is checked before the event type, so even a bogus type
	// reports not-found for an unknown payment id.
	_, err := store.ApplyEvent("missing", "payment_intent.exploded")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestStoreApplyEventUnsupportedType(t *testing.T) {
	store := NewStore()
	created := store.Create(testCreateParams())

	_, err := store.ApplyEvent(created.ID, "payment_intent.exploded")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnsupportedEvent, pkgerrors.As(err).Code())

	// The failed event must not have touched the record.
	got, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentStatusRequiresConfirmation, got.Status)
	assert.Equal(t, int64(0), store.TransitionCount())
}

func TestStoreRepeatEventAdvancesUpdatedAt(t *testing.T) {
	store := NewStore()
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		current = current.Add(time.Millisecond)
		return current
	}

	created := store.Create(testCreateParams())

	first, err := store.ApplyEvent(created.ID, enums.WebhookEventPaymentSucceeded)
	require.NoError(t, err)
	second, err := store.ApplyEvent(created.ID, enums.WebhookEventPaymentSucceeded)
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
	assert.Equal(t, int64(2), store.TransitionCount())
}

func TestStoreConcurrentTransitionsOnOneIntent(t *testing.T) {
	store := NewStore()
	created := store.Create(testCreateParams())

	events := enums.WebhookEventTypes()
	const rounds = 20

	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		for _, event := range events {
			wg.Add(1)
			go func(event enums.WebhookEventType) {
				defer wg.Done()
				_, err := store.ApplyEvent(created.ID, event)
				assert.NoError(t, err)
			}(event)
		}
	}
	wg.Wait()

	require.Equal(t, int64(rounds*len(events)), store.TransitionCount())

	final, err := store.Get(created.ID)
	require.NoError(t, err)

	valid := false
	for _, event := range events {
		if target, _ := event.TargetStatus(); target == final.Status {
			valid = true
		}
	}
	assert.True(t, valid, "final status %s is not a mapped target", final.Status)
	assert.False(t, final.UpdatedAt.Before(final.CreatedAt))
}

func TestStoreConcurrentCreates(t *testing.T) {
	store := NewStore()

	const n = 200
	ids := make(chan string, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- store.Create(testCreateParams()).ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Equal(t, n, store.Len())
}
