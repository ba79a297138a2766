package payments

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/velopay/payments-backend/pkg/enums"
)

// Intent tracks payment progress for an order. Records are owned by the
// Store; everything except Status and UpdatedAt is immutable after creation.
type Intent struct {
	ID           string
	OrderID      string
	Amount       decimal.Decimal
	Currency     string
	Status       enums.PaymentStatus
	Provider     string
	ClientSecret string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const clientSecretEntropyBytes = 8

// newClientSecret builds the opaque token clients present when confirming an
// intent. The random tail must come from a CSPRNG so secrets are unguessable.
func newClientSecret(intentID string) string {
	buf := make([]byte, clientSecretEntropyBytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand.Read does not fail on supported platforms.
		panic(fmt.Sprintf("payments: reading random bytes: %v", err))
	}
	return fmt.Sprintf("pi_%s_secret_%s", intentID, hex.EncodeToString(buf))
}
