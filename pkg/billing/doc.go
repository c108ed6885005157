// Package billing abstracts the payment vendor behind a small Provider
// interface and ships a Paddle implementation.
//
// The flow is intentionally webhook-driven: CreateCheckoutLink opens a hosted
// checkout with the user ID and target plan attached as custom data, and
// ParseWebhook turns a verified transaction.completed event back into a
// Confirmation. PaymentFromConfirmation bridges the confirmation into the
// subscription service's Upgrade call.
package billing
