package billing

import "errors"

var (
	ErrInvalidConfig       = errors.New("invalid billing provider config")
	ErrCheckoutFailed      = errors.New("failed to create checkout session")
	ErrInvalidSignature    = errors.New("webhook signature verification failed")
	ErrUnhandledEvent      = errors.New("webhook event does not confirm a payment")
	ErrMalformedWebhook    = errors.New("failed to parse webhook payload")
	ErrMissingCheckoutData = errors.New("webhook payload is missing checkout custom data")
)
