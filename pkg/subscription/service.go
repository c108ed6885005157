package subscription

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/taskflow/pkg/plan"
)

// DefaultTrialDays is the trial window applied when the target plan does
// not define its own.
const DefaultTrialDays = 14

// Service manages the lifecycle of subscription records: lazy creation,
// trial activation, upgrades, cancellation and usage accounting. Every
// operation is a read-modify-write against the Store; atomicity of
// first-access creation and counter increments is delegated to the store
// (see Store).
type Service interface {
	// EnsureExists returns the user's subscription, creating the default
	// free/active record on first access. Safe under concurrent first
	// access: the store guarantees at most one creation per user.
	EnsureExists(ctx context.Context, userID string) (*Subscription, error)

	// StartTrial activates a time-boxed trial of a paid tier. Fails with
	// ErrTrialAlreadyActive if a trial is running and ErrTrialNotAllowed
	// for the free tier.
	StartTrial(ctx context.Context, userID string, target plan.Tier) (*Subscription, error)

	// Upgrade moves the user to a paid tier. With a payment the plan
	// activates for one month; without one the call routes through the
	// trial path instead of granting indefinite paid access.
	Upgrade(ctx context.Context, userID string, target plan.Tier, payment *Payment) (*Subscription, error)

	// Cancel downgrades to free/active immediately, clearing billing and
	// trial state and recording the previous plan. Not a suspension: the
	// user keeps full free-tier access.
	Cancel(ctx context.Context, userID string) (*Subscription, error)

	// AdjustUsage applies usage[counter] = max(0, usage[counter]+delta).
	// It does not enforce limits; callers check the Evaluator before
	// performing the underlying action.
	AdjustUsage(ctx context.Context, userID string, counter Counter, delta int64) (*Subscription, error)

	// Evaluator returns the entitlement evaluator bound to the service's
	// plan catalog.
	Evaluator() Evaluator
}

type service struct {
	store   Store
	catalog plan.Catalog
	eval    Evaluator
	log     *slog.Logger
	now     func() time.Time
	sink    EventSink
}

// NewService creates a lifecycle Service over the given store and catalog.
// Panics if store is nil to fail fast during initialization.
func NewService(store Store, catalog plan.Catalog, opts ...ServiceOption) Service {
	if store == nil {
		panic("subscription: Store is required")
	}

	s := &service{
		store:   store,
		catalog: catalog,
		eval:    NewEvaluator(catalog),
		log:     slog.Default(),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Evaluator() Evaluator {
	return s.eval
}

func (s *service) EnsureExists(ctx context.Context, userID string) (*Subscription, error) {
	if userID == "" {
		return nil, ErrNoUser
	}

	sub, err := s.store.Get(ctx, userID)
	if err == nil {
		return sub, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	now := s.now()
	sub = &Subscription{
		UserID:    userID,
		Plan:      plan.TierFree,
		Status:    StatusActive,
		StartDate: now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Create(ctx, sub); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			// Lost the first-access race; the stored record wins.
			return s.store.Get(ctx, userID)
		}
		return nil, err
	}

	s.log.InfoContext(ctx, "subscription created", "user_id", userID, "plan", sub.Plan)
	s.emit(EventCreated, userID, plan.TierFree, plan.TierFree, now)
	return sub, nil
}

func (s *service) StartTrial(ctx context.Context, userID string, target plan.Tier) (*Subscription, error) {
	if userID == "" {
		return nil, ErrNoUser
	}

	target = plan.ParseTier(string(target))
	if target == plan.TierFree {
		return nil, ErrTrialNotAllowed
	}

	sub, err := s.EnsureExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sub.IsTrialActive {
		return nil, ErrTrialAlreadyActive
	}

	now := s.now()
	from := sub.Plan
	s.applyTrial(sub, target, now)

	if err := s.store.Save(ctx, sub); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "trial started",
		"user_id", userID, "plan", target, "trial_end", *sub.TrialEndDate)
	s.emit(EventTrialStarted, userID, from, target, now)
	return sub, nil
}

func (s *service) Upgrade(ctx context.Context, userID string, target plan.Tier, payment *Payment) (*Subscription, error) {
	if userID == "" {
		return nil, ErrNoUser
	}

	target = plan.ParseTier(string(target))
	if target == plan.TierFree {
		return nil, ErrFreeTierUpgrade
	}

	sub, err := s.EnsureExists(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	from := sub.Plan

	switch {
	case payment != nil:
		end := now.AddDate(0, 1, 0)
		pay := *payment
		if pay.PaidAt.IsZero() {
			pay.PaidAt = now
		}
		sub.Plan = target
		sub.Status = StatusActive
		sub.StartDate = now
		sub.EndDate = &end
		sub.NextBillingDate = &end
		sub.LastPayment = &pay
		// Payment supersedes any running trial.
		sub.IsTrialActive = false
		sub.TrialEndDate = nil
		sub.UpdatedAt = now

		if err := s.store.Save(ctx, sub); err != nil {
			return nil, err
		}
		s.log.InfoContext(ctx, "plan upgraded",
			"user_id", userID, "from", from, "to", target, "transaction_id", pay.TransactionID)
		s.emit(EventUpgraded, userID, from, target, now)

	case sub.IsTrialActive:
		// Trial already running: switch the tier, keep the window.
		sub.Plan = target
		sub.Status = StatusTrial
		sub.UpdatedAt = now

		if err := s.store.Save(ctx, sub); err != nil {
			return nil, err
		}
		s.log.InfoContext(ctx, "trial plan changed", "user_id", userID, "from", from, "to", target)
		s.emit(EventTrialPlanChanged, userID, from, target, now)

	default:
		// No payment and no trial: an upgrade never grants indefinite paid
		// access, so route through the trial window.
		s.applyTrial(sub, target, now)

		if err := s.store.Save(ctx, sub); err != nil {
			return nil, err
		}
		s.log.InfoContext(ctx, "trial started",
			"user_id", userID, "plan", target, "trial_end", *sub.TrialEndDate)
		s.emit(EventTrialStarted, userID, from, target, now)
	}

	return sub, nil
}

func (s *service) Cancel(ctx context.Context, userID string) (*Subscription, error) {
	if userID == "" {
		return nil, ErrNoUser
	}

	sub, err := s.EnsureExists(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	from := sub.Plan

	sub.PreviousPlan = sub.Plan
	sub.Plan = plan.TierFree
	sub.Status = StatusActive
	sub.EndDate = nil
	sub.TrialEndDate = nil
	sub.IsTrialActive = false
	sub.LastPayment = nil
	sub.NextBillingDate = nil
	sub.CancelledAt = &now
	sub.UpdatedAt = now

	if err := s.store.Save(ctx, sub); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "subscription cancelled", "user_id", userID, "previous_plan", from)
	s.emit(EventCancelled, userID, from, plan.TierFree, now)
	return sub, nil
}

func (s *service) AdjustUsage(ctx context.Context, userID string, counter Counter, delta int64) (*Subscription, error) {
	if userID == "" {
		return nil, ErrNoUser
	}
	if !counter.Valid() {
		return nil, ErrInvalidCounter
	}

	// Lazy creation applies to usage writes too: the first tracked action
	// of a brand-new user must not fail on a missing record.
	if _, err := s.EnsureExists(ctx, userID); err != nil {
		return nil, err
	}

	sub, err := s.store.IncrementUsage(ctx, userID, counter, delta)
	if err != nil {
		return nil, err
	}

	s.log.DebugContext(ctx, "usage adjusted",
		"user_id", userID, "counter", string(counter), "delta", delta, "value", sub.Usage.Get(counter))
	return sub, nil
}

// applyTrial mutates sub into a trial of the target tier starting now.
func (s *service) applyTrial(sub *Subscription, target plan.Tier, now time.Time) {
	days := s.catalog.Get(target).TrialDays
	if days <= 0 {
		days = DefaultTrialDays
	}
	end := now.AddDate(0, 0, days)

	sub.Plan = target
	sub.Status = StatusTrial
	sub.IsTrialActive = true
	sub.TrialEndDate = &end
	sub.StartDate = now
	sub.NextBillingDate = &end
	sub.UpdatedAt = now
}

func (s *service) emit(t EventType, userID string, from, to plan.Tier, at time.Time) {
	if s.sink == nil {
		return
	}
	s.sink(Event{
		ID:       uuid.New(),
		UserID:   userID,
		Type:     t,
		FromPlan: from,
		ToPlan:   to,
		At:       at,
	})
}
