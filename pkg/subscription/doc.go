// Package subscription implements TaskFlow's subscription entitlement and
// usage-limit engine: the decision of whether a user's current plan, trial
// state and usage permit an action, and the state transitions between plans.
//
// The package splits the concern in two:
//
//   - Evaluator: pure, side-effect-free entitlement checks over a
//     Subscription value and the plan catalog. Safe from any number of
//     concurrent readers; a nil subscription uniformly means "no access".
//   - Service: lifecycle commands (EnsureExists, StartTrial, Upgrade,
//     Cancel, AdjustUsage) performing read-modify-write against a Store.
//
// # Entitlement checks
//
// Limit checks return a Decision carrying the denial reason, so the UI can
// route the user to the matching upgrade path:
//
//	eval := svc.Evaluator()
//	if d := eval.CanCreateBoard(sub, boardCount); !d.Allowed {
//		switch d.Reason {
//		case subscription.ReasonBoardLimit:
//			// show the board-limit upgrade prompt
//		case subscription.ReasonNoSubscription:
//			// send to plan selection
//		}
//	}
//
// Protected areas gate on a single derived state:
//
//	switch eval.AccessStateAt(sub, time.Now().UTC()) {
//	case subscription.AccessGranted:
//	case subscription.AccessTrialExpired:
//		// trial lapsed: prompt to upgrade
//	case subscription.AccessNoSubscription, subscription.AccessExpired:
//		// send to plan selection
//	}
//
// Trial expiry is always derived at evaluation time; no scheduled job
// rewrites records.
//
// # Lifecycle
//
//	store := subscription.NewMemoryStore() // or mongostore / redisstore
//	svc := subscription.NewService(store, plan.Default(),
//		subscription.WithLogger(log),
//	)
//
//	sub, err := svc.EnsureExists(ctx, userID)         // lazy free/active record
//	sub, err = svc.StartTrial(ctx, userID, plan.TierPro)
//	sub, err = svc.Upgrade(ctx, userID, plan.TierPro, &subscription.Payment{
//		Amount:        29900,
//		Currency:      "USD",
//		TransactionID: "tx_1",
//	})
//	sub, err = svc.Cancel(ctx, userID)                // downgrade to free/active
//
// Upgrading without a payment never grants indefinite paid access: the call
// routes through the 14-day trial path instead. Cancellation is a downgrade,
// not a suspension; the record persists for the life of the account.
//
// Validation failures are sentinel errors (ErrTrialAlreadyActive,
// ErrTrialNotAllowed, ...). Store failures surface joined with
// ErrStoreUnavailable and are retryable by the caller; the service itself
// never retries.
//
// # Usage counters
//
// AdjustUsage delegates to the store's atomic increment primitive rather
// than read-then-write, so concurrent actions cannot lose updates; counters
// floor at zero. The service enforces no limits on this path; callers
// consult the Evaluator before performing the underlying action.
package subscription
