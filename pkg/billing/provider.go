package billing

import (
	"context"
	"time"

	"github.com/dmitrymomot/taskflow/pkg/plan"
	"github.com/dmitrymomot/taskflow/pkg/subscription"
)

// CheckoutRequest describes a hosted checkout session for a plan purchase.
// UserID and Tier travel through the provider as custom data and come back
// on the payment webhook, which is how a confirmation finds its user.
type CheckoutRequest struct {
	UserID     string
	Tier       plan.Tier
	PriceID    string
	Email      string
	SuccessURL string
}

// CheckoutLink is a hosted checkout session created by the provider.
type CheckoutLink struct {
	URL       string
	SessionID string
	ExpiresAt time.Time
}

// Confirmation is a verified payment notification from the provider.
type Confirmation struct {
	UserID        string
	Tier          plan.Tier
	Amount        int64
	Currency      string
	Method        string
	TransactionID string
	PaidAt        time.Time
}

// Provider abstracts the payment vendor. Implementations must verify webhook
// signatures before returning a Confirmation.
type Provider interface {
	// CreateCheckoutLink creates a hosted checkout session for req.
	CreateCheckoutLink(ctx context.Context, req CheckoutRequest) (*CheckoutLink, error)

	// ParseWebhook verifies and parses a webhook payload. It returns
	// ErrUnhandledEvent for event types that do not confirm a payment.
	ParseWebhook(ctx context.Context, payload []byte, signature string) (*Confirmation, error)
}

// PaymentFromConfirmation converts a verified confirmation into the payment
// record attached to a subscription.
func PaymentFromConfirmation(c Confirmation) subscription.Payment {
	return subscription.Payment{
		Amount:        c.Amount,
		Currency:      c.Currency,
		Method:        c.Method,
		TransactionID: c.TransactionID,
		PaidAt:        c.PaidAt,
	}
}
