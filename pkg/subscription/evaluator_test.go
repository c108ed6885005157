package subscription_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/taskflow/pkg/plan"
	"github.com/dmitrymomot/taskflow/pkg/subscription"
)

func newEvaluator() subscription.Evaluator {
	return subscription.NewEvaluator(plan.Default())
}

func activeSub(tier plan.Tier, usage subscription.Usage) *subscription.Subscription {
	return &subscription.Subscription{
		UserID: "user-1",
		Plan:   tier,
		Status: subscription.StatusActive,
		Usage:  usage,
	}
}

func TestEvaluator_CanCreateBoard(t *testing.T) {
	t.Parallel()

	eval := newEvaluator()

	t.Run("nil subscription denied with reason", func(t *testing.T) {
		t.Parallel()
		d := eval.CanCreateBoard(nil, 0)
		assert.False(t, d.Allowed)
		assert.Equal(t, subscription.ReasonNoSubscription, d.Reason)
	})

	t.Run("free tier exhaustive around the limit", func(t *testing.T) {
		t.Parallel()
		sub := activeSub(plan.TierFree, subscription.Usage{})

		// boardLimit = 3: allowed strictly below, denied at and above.
		for n := int64(0); n < 3; n++ {
			d := eval.CanCreateBoard(sub, n)
			assert.True(t, d.Allowed, "count %d", n)
		}
		for n := int64(3); n < 6; n++ {
			d := eval.CanCreateBoard(sub, n)
			assert.False(t, d.Allowed, "count %d", n)
			assert.Equal(t, subscription.ReasonBoardLimit, d.Reason)
			assert.Equal(t, int64(3), d.Limit)
			assert.Equal(t, n, d.Used)
		}
	})

	t.Run("unlimited tier always allowed", func(t *testing.T) {
		t.Parallel()
		sub := activeSub(plan.TierEnterprise, subscription.Usage{})
		d := eval.CanCreateBoard(sub, 1_000_000)
		assert.True(t, d.Allowed)
		assert.Equal(t, plan.Unlimited, d.Limit)
	})

	t.Run("unknown plan falls back to free limits", func(t *testing.T) {
		t.Parallel()
		sub := activeSub(plan.Tier("platinum"), subscription.Usage{})
		d := eval.CanCreateBoard(sub, 3)
		assert.False(t, d.Allowed)
		assert.Equal(t, subscription.ReasonBoardLimit, d.Reason)
	})
}

func TestEvaluator_CanAddMember(t *testing.T) {
	t.Parallel()

	eval := newEvaluator()

	t.Run("below limit allowed", func(t *testing.T) {
		t.Parallel()
		sub := activeSub(plan.TierFree, subscription.Usage{MembersUsed: 4})
		assert.True(t, eval.CanAddMember(sub).Allowed)
	})

	t.Run("at limit denied with reason", func(t *testing.T) {
		t.Parallel()
		sub := activeSub(plan.TierFree, subscription.Usage{MembersUsed: 5})
		d := eval.CanAddMember(sub)
		assert.False(t, d.Allowed)
		assert.Equal(t, subscription.ReasonMemberLimit, d.Reason)
		assert.Equal(t, int64(5), d.Used)
		assert.Equal(t, int64(5), d.Limit)
	})

	t.Run("nil subscription denied", func(t *testing.T) {
		t.Parallel()
		d := eval.CanAddMember(nil)
		assert.False(t, d.Allowed)
		assert.Equal(t, subscription.ReasonNoSubscription, d.Reason)
	})
}

func TestEvaluator_CanUploadFile(t *testing.T) {
	t.Parallel()

	eval := newEvaluator()
	const mb = int64(1024 * 1024)

	t.Run("fits within the allowance", func(t *testing.T) {
		t.Parallel()
		// free: 10MB, 4 used, 6MB file fits exactly.
		sub := activeSub(plan.TierFree, subscription.Usage{StorageUsedMB: 4})
		assert.True(t, eval.CanUploadFile(sub, 6*mb).Allowed)
	})

	t.Run("overflow denied with reason", func(t *testing.T) {
		t.Parallel()
		sub := activeSub(plan.TierFree, subscription.Usage{StorageUsedMB: 4})
		d := eval.CanUploadFile(sub, 7*mb)
		assert.False(t, d.Allowed)
		assert.Equal(t, subscription.ReasonStorageLimit, d.Reason)
		assert.Equal(t, int64(10), d.Limit)
	})

	t.Run("fractional file sizes count", func(t *testing.T) {
		t.Parallel()
		sub := activeSub(plan.TierFree, subscription.Usage{StorageUsedMB: 10})
		// A single byte over a full allowance is denied.
		assert.False(t, eval.CanUploadFile(sub, 1).Allowed)
	})

	t.Run("unlimited storage short-circuits", func(t *testing.T) {
		t.Parallel()
		sub := activeSub(plan.TierEnterprise, subscription.Usage{StorageUsedMB: 1 << 40})
		assert.True(t, eval.CanUploadFile(sub, 1<<40).Allowed)
	})

	t.Run("nil subscription denied", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, subscription.ReasonNoSubscription, eval.CanUploadFile(nil, mb).Reason)
	})
}

func TestEvaluator_CheckFeature(t *testing.T) {
	t.Parallel()

	eval := newEvaluator()

	t.Run("granted feature", func(t *testing.T) {
		t.Parallel()
		sub := activeSub(plan.TierPro, subscription.Usage{})
		assert.True(t, eval.HasFeature(sub, plan.FeaturePremiumTemplates))
	})

	t.Run("feature above the plan", func(t *testing.T) {
		t.Parallel()
		sub := activeSub(plan.TierFree, subscription.Usage{})
		d := eval.CheckFeature(sub, plan.FeatureAdvancedAnalytics)
		assert.False(t, d.Allowed)
		assert.Equal(t, subscription.ReasonFeatureNotAvailable, d.Reason)
	})

	t.Run("nil subscription has no features", func(t *testing.T) {
		t.Parallel()
		assert.False(t, eval.HasFeature(nil, plan.FeatureBasicTemplates))
		assert.Equal(t, subscription.ReasonNoSubscription, eval.CheckFeature(nil, plan.FeatureBasicTemplates).Reason)
	})
}

func TestEvaluator_AccessStateAt(t *testing.T) {
	t.Parallel()

	eval := newEvaluator()
	end := baseTime.AddDate(0, 0, 14)

	tests := []struct {
		name string
		sub  *subscription.Subscription
		now  time.Time
		want subscription.AccessState
	}{
		{"nil subscription", nil, baseTime, subscription.AccessNoSubscription},
		{"active free", activeSub(plan.TierFree, subscription.Usage{}), baseTime, subscription.AccessGranted},
		{"cancelled status", &subscription.Subscription{Status: subscription.StatusCancelled}, baseTime, subscription.AccessExpired},
		{"expired status", &subscription.Subscription{Status: subscription.StatusExpired}, baseTime, subscription.AccessExpired},
		{"live trial", trialSub(end), baseTime, subscription.AccessGranted},
		{"trial at the boundary", trialSub(end), end, subscription.AccessGranted},
		{"lapsed trial", trialSub(end), end.AddDate(0, 0, 1), subscription.AccessTrialExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, eval.AccessStateAt(tt.sub, tt.now))
		})
	}
}
