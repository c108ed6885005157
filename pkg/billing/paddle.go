package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"

	"github.com/dmitrymomot/taskflow/pkg/plan"
)

// PaddleConfig holds configuration for the Paddle billing provider.
type PaddleConfig struct {
	APIKey        string `env:"PADDLE_API_KEY,required"`
	WebhookSecret string `env:"PADDLE_WEBHOOK_SECRET,required"`
	Environment   string `env:"PADDLE_ENVIRONMENT" envDefault:"production"`
}

// PaddleProvider implements Provider for Paddle.
type PaddleProvider struct {
	client   *paddle.SDK
	verifier *paddle.WebhookVerifier
}

// NewPaddleProvider creates a Paddle billing provider.
func NewPaddleProvider(cfg PaddleConfig) (*PaddleProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.Join(ErrInvalidConfig, errors.New("paddle API key is required"))
	}
	if cfg.WebhookSecret == "" {
		return nil, errors.Join(ErrInvalidConfig, errors.New("paddle webhook secret is required"))
	}

	var client *paddle.SDK
	var err error

	switch strings.ToLower(cfg.Environment) {
	case "sandbox":
		client, err = paddle.NewSandbox(cfg.APIKey)
	case "production", "":
		client, err = paddle.New(cfg.APIKey)
	default:
		return nil, errors.Join(ErrInvalidConfig, fmt.Errorf("invalid paddle environment: %s", cfg.Environment))
	}
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	return &PaddleProvider{
		client:   client,
		verifier: paddle.NewWebhookVerifier(cfg.WebhookSecret),
	}, nil
}

// CreateCheckoutLink creates a hosted checkout session in Paddle. The user ID
// and target tier ride along as custom data so the payment webhook can be
// attributed without any local session state.
func (p *PaddleProvider) CreateCheckoutLink(ctx context.Context, req CheckoutRequest) (*CheckoutLink, error) {
	if req.PriceID == "" {
		return nil, errors.Join(ErrCheckoutFailed, errors.New("price ID is required"))
	}
	if req.UserID == "" {
		return nil, errors.Join(ErrCheckoutFailed, errors.New("user ID is required"))
	}
	if !req.Tier.Valid() || req.Tier == plan.TierFree {
		return nil, errors.Join(ErrCheckoutFailed, fmt.Errorf("tier %q is not purchasable", req.Tier))
	}

	item := paddle.NewCreateTransactionItemsTransactionItemFromCatalog(&paddle.TransactionItemFromCatalog{
		PriceID:  req.PriceID,
		Quantity: 1,
	})

	transactionReq := &paddle.CreateTransactionRequest{
		Items: []paddle.CreateTransactionItems{*item},
		CustomData: paddle.CustomData{
			"user_id": req.UserID,
			"plan":    string(req.Tier),
		},
	}
	if req.Email != "" {
		transactionReq.CustomData["email"] = req.Email
	}
	if req.SuccessURL != "" {
		transactionReq.Checkout = &paddle.TransactionCheckout{
			URL: paddle.PtrTo(req.SuccessURL),
		}
	}

	transaction, err := p.client.TransactionsClient.CreateTransaction(ctx, transactionReq)
	if err != nil {
		return nil, errors.Join(ErrCheckoutFailed, err)
	}
	if transaction.Checkout == nil || transaction.Checkout.URL == nil {
		return nil, errors.Join(ErrCheckoutFailed, errors.New("no checkout URL returned from paddle"))
	}

	return &CheckoutLink{
		URL:       *transaction.Checkout.URL,
		SessionID: transaction.ID,
		// Paddle checkout links expire after 24 hours.
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}, nil
}

// ParseWebhook verifies the Paddle signature and extracts a payment
// confirmation from a transaction.completed event.
func (p *PaddleProvider) ParseWebhook(ctx context.Context, payload []byte, signature string) (*Confirmation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/webhook", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Join(ErrMalformedWebhook, err)
	}
	req.Header.Set("Paddle-Signature", signature)

	valid, err := p.verifier.Verify(req)
	if err != nil {
		return nil, errors.Join(ErrInvalidSignature, err)
	}
	if !valid {
		return nil, ErrInvalidSignature
	}

	return parseConfirmation(payload)
}

// paddleEnvelope is the subset of the webhook payload the parser needs.
type paddleEnvelope struct {
	EventType  string `json:"event_type"`
	OccurredAt string `json:"occurred_at"`
	Data       struct {
		ID         string            `json:"id"`
		CustomData map[string]string `json:"custom_data"`
		Details    struct {
			Totals struct {
				GrandTotal   string `json:"grand_total"`
				CurrencyCode string `json:"currency_code"`
			} `json:"totals"`
		} `json:"details"`
		Payments []struct {
			MethodDetails struct {
				Type string `json:"type"`
			} `json:"method_details"`
		} `json:"payments"`
	} `json:"data"`
}

func parseConfirmation(payload []byte) (*Confirmation, error) {
	var env paddleEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, errors.Join(ErrMalformedWebhook, err)
	}

	if env.EventType != "transaction.completed" {
		return nil, errors.Join(ErrUnhandledEvent, fmt.Errorf("event type %q", env.EventType))
	}

	userID := env.Data.CustomData["user_id"]
	tierName := env.Data.CustomData["plan"]
	if userID == "" || tierName == "" {
		return nil, ErrMissingCheckoutData
	}

	// Paddle reports totals in the smallest currency unit as a string.
	amount, err := strconv.ParseInt(env.Data.Details.Totals.GrandTotal, 10, 64)
	if err != nil {
		return nil, errors.Join(ErrMalformedWebhook, fmt.Errorf("grand total %q: %w", env.Data.Details.Totals.GrandTotal, err))
	}

	paidAt, err := time.Parse(time.RFC3339, env.OccurredAt)
	if err != nil {
		paidAt = time.Now().UTC()
	}

	method := "card"
	if len(env.Data.Payments) > 0 && env.Data.Payments[0].MethodDetails.Type != "" {
		method = env.Data.Payments[0].MethodDetails.Type
	}

	return &Confirmation{
		UserID:        userID,
		Tier:          plan.ParseTier(tierName),
		Amount:        amount,
		Currency:      env.Data.Details.Totals.CurrencyCode,
		Method:        method,
		TransactionID: env.Data.ID,
		PaidAt:        paidAt,
	}, nil
}
