package payments

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/velopay/payments-backend/pkg/enums"
	pkgerrors "github.com/velopay/payments-backend/pkg/errors"
)

// Store holds payment intents in memory for the lifetime of the process.
// A read-write mutex guards the map itself; each record carries its own
// mutex so transitions on different intents never serialize against each
// other.
type Store struct {
	mu      sync.RWMutex
	records map[string]*record

	transitions atomic.Int64

	now func() time.Time
}

type record struct {
	mu     sync.Mutex
	intent Intent
}

// NewStore returns an empty in-memory intent store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]*record),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// CreateParams carries the already-defaulted attributes for a new intent.
type CreateParams struct {
	OrderID  string
	Method   enums.PaymentMethod
	Amount   decimal.Decimal
	Currency string
	Provider string
}

// Create mints a new intent with a fresh id and client secret and stores it.
// The intent starts in requires_confirmation with createdAt == updatedAt.
func (s *Store) Create(params CreateParams) Intent {
	now := s.now()
	id := uuid.NewString()

	intent := Intent{
		ID:           id,
		OrderID:      params.OrderID,
		Amount:       params.Amount,
		Currency:     params.Currency,
		Status:       enums.PaymentStatusRequiresConfirmation,
		Provider:     params.Provider,
		ClientSecret: newClientSecret(id),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	s.mu.Lock()
	s.records[id] = &record{intent: intent}
	s.mu.Unlock()

	return intent
}

// Get returns a snapshot of the intent with the given id.
func (s *Store) Get(id string) (Intent, error) {
	rec, ok := s.lookup(id)
	if !ok {
		return Intent{}, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
	}

	rec.mu.Lock()
	snapshot := rec.intent
	rec.mu.Unlock()
	return snapshot, nil
}

// ApplyEvent maps the event type to its target status and commits the
// transition. Existence is checked before the event type so an unknown
// payment id reports not-found even for bogus events. Transitions carry no
// state-machine guards: the latest committed event wins.
func (s *Store) ApplyEvent(paymentID string, eventType enums.WebhookEventType) (Intent, error) {
	rec, ok := s.lookup(paymentID)
	if !ok {
		return Intent{}, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
	}

	target, ok := eventType.TargetStatus()
	if !ok {
		return Intent{}, pkgerrors.New(pkgerrors.CodeUnsupportedEvent, "unsupported event type").
			WithDetails(map[string]any{"type": eventType.String()})
	}

	rec.mu.Lock()
	rec.intent.Status = target
	rec.intent.UpdatedAt = s.now()
	snapshot := rec.intent
	rec.mu.Unlock()

	s.transitions.Add(1)
	return snapshot, nil
}

// TransitionCount reports how many transitions have been committed.
func (s *Store) TransitionCount() int64 {
	return s.transitions.Load()
}

// Len reports the number of stored intents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) lookup(id string) (*record, bool) {
	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	return rec, ok
}
