package mongostore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/taskflow/pkg/plan"
	"github.com/dmitrymomot/taskflow/pkg/subscription"
)

func TestRecordRoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	end := now.AddDate(0, 1, 0)
	cancelled := now.Add(time.Hour)

	sub := &subscription.Subscription{
		UserID:          "user_1",
		Plan:            plan.TierPro,
		Status:          subscription.StatusActive,
		StartDate:       now,
		EndDate:         &end,
		IsTrialActive:   false,
		NextBillingDate: &end,
		CancelledAt:     &cancelled,
		PreviousPlan:    plan.TierTeam,
		LastPayment: &subscription.Payment{
			Amount:        29900,
			Currency:      "USD",
			Method:        "card",
			TransactionID: "tx_42",
			PaidAt:        now,
		},
		Usage: subscription.Usage{
			BoardsUsed:    7,
			MembersUsed:   3,
			StorageUsedMB: 120,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	got := toRecord(sub).toSubscription()
	assert.Equal(t, sub, got)
}

func TestRecordToSubscription(t *testing.T) {
	t.Parallel()

	t.Run("unknown plan degrades to free", func(t *testing.T) {
		t.Parallel()

		r := record{UserID: "user_1", Plan: "platinum", Status: "active"}
		sub := r.toSubscription()
		assert.Equal(t, plan.TierFree, sub.Plan)
	})

	t.Run("empty previous plan stays empty", func(t *testing.T) {
		t.Parallel()

		r := record{UserID: "user_1", Plan: "free", Status: "active"}
		sub := r.toSubscription()
		assert.Empty(t, sub.PreviousPlan)
		assert.Nil(t, sub.LastPayment)
	})
}

func TestNewStorePanicsOnNilDatabase(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { NewStore(nil) })
}
