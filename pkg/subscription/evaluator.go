package subscription

import (
	"time"

	"github.com/dmitrymomot/taskflow/pkg/plan"
)

// DenialReason explains why an entitlement check failed, so the
// presentation layer can route the user to the matching upgrade path.
type DenialReason string

const (
	ReasonNone                DenialReason = ""
	ReasonNoSubscription      DenialReason = "no_subscription"
	ReasonBoardLimit          DenialReason = "board_limit"
	ReasonMemberLimit         DenialReason = "member_limit"
	ReasonStorageLimit        DenialReason = "storage_limit"
	ReasonFeatureNotAvailable DenialReason = "feature_not_available"
)

// Decision is the result of an entitlement check. Used and Limit carry the
// counter values the check compared (in MB for storage checks), letting the
// UI show "3 of 3 boards used" without a second lookup.
type Decision struct {
	Allowed bool         `json:"allowed"`
	Reason  DenialReason `json:"reason,omitempty"`
	Used    int64        `json:"used"`
	Limit   int64        `json:"limit"`
}

// AccessState is the single decision used to gate protected application
// areas.
type AccessState string

const (
	AccessGranted        AccessState = "granted"
	AccessNoSubscription AccessState = "no_subscription"
	AccessExpired        AccessState = "expired"
	AccessTrialExpired   AccessState = "trial_expired"
)

// Evaluator answers entitlement questions over a subscription and the plan
// catalog. All methods are pure and total: they never fail and treat a nil
// subscription as "no access" rather than an error, so they are safe on any
// number of concurrent read paths without coordination.
type Evaluator struct {
	catalog plan.Catalog
}

// NewEvaluator returns an Evaluator over the given catalog.
func NewEvaluator(catalog plan.Catalog) Evaluator {
	return Evaluator{catalog: catalog}
}

// HasFeature reports whether the subscription's plan grants the feature.
// Fails closed: nil subscription means no features.
func (e Evaluator) HasFeature(sub *Subscription, f plan.Feature) bool {
	return e.CheckFeature(sub, f).Allowed
}

// CheckFeature is HasFeature with a reasoned result.
func (e Evaluator) CheckFeature(sub *Subscription, f plan.Feature) Decision {
	if sub == nil {
		return Decision{Reason: ReasonNoSubscription}
	}
	if !e.catalog.Get(sub.Plan).HasFeature(f) {
		return Decision{Reason: ReasonFeatureNotAvailable}
	}
	return Decision{Allowed: true}
}

// CanCreateBoard checks the board limit against the caller-supplied current
// board count. The count is passed in rather than read from usage so the
// UI can check against a live board list.
func (e Evaluator) CanCreateBoard(sub *Subscription, currentBoardCount int64) Decision {
	if sub == nil {
		return Decision{Reason: ReasonNoSubscription}
	}
	limit := e.catalog.Get(sub.Plan).BoardLimit
	if limit == plan.Unlimited {
		return Decision{Allowed: true, Used: currentBoardCount, Limit: plan.Unlimited}
	}
	if currentBoardCount < limit {
		return Decision{Allowed: true, Used: currentBoardCount, Limit: limit}
	}
	return Decision{Reason: ReasonBoardLimit, Used: currentBoardCount, Limit: limit}
}

// CanAddMember checks the member limit against the recorded usage counter.
func (e Evaluator) CanAddMember(sub *Subscription) Decision {
	if sub == nil {
		return Decision{Reason: ReasonNoSubscription}
	}
	limit := e.catalog.Get(sub.Plan).MemberLimit
	used := sub.Usage.MembersUsed
	if limit == plan.Unlimited {
		return Decision{Allowed: true, Used: used, Limit: plan.Unlimited}
	}
	if used < limit {
		return Decision{Allowed: true, Used: used, Limit: limit}
	}
	return Decision{Reason: ReasonMemberLimit, Used: used, Limit: limit}
}

// CanUploadFile checks whether a file of the given size fits in the plan's
// storage allowance on top of current usage.
func (e Evaluator) CanUploadFile(sub *Subscription, fileSizeBytes int64) Decision {
	if sub == nil {
		return Decision{Reason: ReasonNoSubscription}
	}
	limit := e.catalog.Get(sub.Plan).StorageLimitMB
	used := sub.Usage.StorageUsedMB
	if limit == plan.Unlimited {
		return Decision{Allowed: true, Used: used, Limit: plan.Unlimited}
	}
	fileSizeMB := float64(fileSizeBytes) / (1024 * 1024)
	if float64(used)+fileSizeMB <= float64(limit) {
		return Decision{Allowed: true, Used: used, Limit: limit}
	}
	return Decision{Reason: ReasonStorageLimit, Used: used, Limit: limit}
}

// AccessStateAt derives the gate decision for protected areas at the given
// time. Trial expiry is evaluated lazily here; no background job ever
// transitions the stored record.
func (e Evaluator) AccessStateAt(sub *Subscription, now time.Time) AccessState {
	switch {
	case sub == nil:
		return AccessNoSubscription
	case sub.Status == StatusCancelled || sub.Status == StatusExpired:
		return AccessExpired
	case sub.IsTrialExpiredAt(now):
		return AccessTrialExpired
	default:
		return AccessGranted
	}
}
