package mongostore

import (
	"time"

	"github.com/dmitrymomot/taskflow/pkg/plan"
	"github.com/dmitrymomot/taskflow/pkg/subscription"
)

// record is the persisted document shape. Field names match the historical
// subscription documents and must not change.
type record struct {
	UserID          string         `bson:"_id"`
	Plan            string         `bson:"plan"`
	Status          string         `bson:"status"`
	StartDate       time.Time      `bson:"startDate"`
	EndDate         *time.Time     `bson:"endDate"`
	TrialEndDate    *time.Time     `bson:"trialEndDate"`
	IsTrialActive   bool           `bson:"isTrialActive"`
	LastPayment     *paymentRecord `bson:"lastPayment"`
	NextBillingDate *time.Time     `bson:"nextBillingDate"`
	CancelledAt     *time.Time     `bson:"cancelledAt,omitempty"`
	PreviousPlan    string         `bson:"previousPlan,omitempty"`
	Usage           usageRecord    `bson:"usage"`
	CreatedAt       time.Time      `bson:"createdAt"`
	UpdatedAt       time.Time      `bson:"updatedAt"`
}

type paymentRecord struct {
	Amount        int64     `bson:"amount"`
	Currency      string    `bson:"currency"`
	Method        string    `bson:"method"`
	TransactionID string    `bson:"transactionId"`
	PaidAt        time.Time `bson:"paidAt"`
}

type usageRecord struct {
	BoardsUsed    int64 `bson:"boardsUsed"`
	MembersUsed   int64 `bson:"membersUsed"`
	StorageUsedMB int64 `bson:"storageUsedMB"`
}

func toRecord(sub *subscription.Subscription) record {
	r := record{
		UserID:          sub.UserID,
		Plan:            string(sub.Plan),
		Status:          string(sub.Status),
		StartDate:       sub.StartDate,
		EndDate:         sub.EndDate,
		TrialEndDate:    sub.TrialEndDate,
		IsTrialActive:   sub.IsTrialActive,
		NextBillingDate: sub.NextBillingDate,
		CancelledAt:     sub.CancelledAt,
		PreviousPlan:    string(sub.PreviousPlan),
		Usage: usageRecord{
			BoardsUsed:    sub.Usage.BoardsUsed,
			MembersUsed:   sub.Usage.MembersUsed,
			StorageUsedMB: sub.Usage.StorageUsedMB,
		},
		CreatedAt: sub.CreatedAt,
		UpdatedAt: sub.UpdatedAt,
	}
	if sub.LastPayment != nil {
		r.LastPayment = &paymentRecord{
			Amount:        sub.LastPayment.Amount,
			Currency:      sub.LastPayment.Currency,
			Method:        sub.LastPayment.Method,
			TransactionID: sub.LastPayment.TransactionID,
			PaidAt:        sub.LastPayment.PaidAt,
		}
	}
	return r
}

func (r record) toSubscription() *subscription.Subscription {
	sub := &subscription.Subscription{
		UserID: r.UserID,
		// Unknown tiers in stored data degrade to free instead of failing.
		Plan:            plan.ParseTier(r.Plan),
		Status:          subscription.Status(r.Status),
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		TrialEndDate:    r.TrialEndDate,
		IsTrialActive:   r.IsTrialActive,
		NextBillingDate: r.NextBillingDate,
		CancelledAt:     r.CancelledAt,
		Usage: subscription.Usage{
			BoardsUsed:    r.Usage.BoardsUsed,
			MembersUsed:   r.Usage.MembersUsed,
			StorageUsedMB: r.Usage.StorageUsedMB,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.PreviousPlan != "" {
		sub.PreviousPlan = plan.ParseTier(r.PreviousPlan)
	}
	if r.LastPayment != nil {
		sub.LastPayment = &subscription.Payment{
			Amount:        r.LastPayment.Amount,
			Currency:      r.LastPayment.Currency,
			Method:        r.LastPayment.Method,
			TransactionID: r.LastPayment.TransactionID,
			PaidAt:        r.LastPayment.PaidAt,
		}
	}
	return sub
}
