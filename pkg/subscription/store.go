package subscription

import "context"

// Store defines the persistence boundary for subscription records, keyed by
// user ID. Implementations map their backend failures onto the package's
// sentinel errors: ErrNotFound, ErrAlreadyExists, and ErrStoreUnavailable
// (joined with the underlying cause) for anything retryable.
type Store interface {
	// Get retrieves the subscription for a user.
	// Returns ErrNotFound if no record exists.
	Get(ctx context.Context, userID string) (*Subscription, error)

	// Create inserts a new record. The insert must be atomic with respect
	// to concurrent first access: if a record already exists the call
	// returns ErrAlreadyExists and leaves the stored record untouched.
	Create(ctx context.Context, sub *Subscription) error

	// Save creates or replaces the record for sub.UserID.
	Save(ctx context.Context, sub *Subscription) error

	// IncrementUsage atomically applies usage[counter] = max(0, usage[counter]+delta)
	// and returns the updated record. Returns ErrNotFound if no record exists.
	IncrementUsage(ctx context.Context, userID string, counter Counter, delta int64) (*Subscription, error)

	// Watch streams change notifications for a user's record until ctx is
	// done; the returned channel is closed when the stream ends.
	Watch(ctx context.Context, userID string) (<-chan Subscription, error)
}
