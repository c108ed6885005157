package subscription

import (
	"math"
	"time"

	"github.com/dmitrymomot/taskflow/pkg/plan"
)

// Subscription represents a user's subscription record. Each user has
// exactly one, created lazily on first access (see Service.EnsureExists);
// the record persists for the life of the account.
//
// JSON field names are part of the persisted contract and must be preserved
// for forward compatibility with existing records.
type Subscription struct {
	UserID          string     `json:"userId"`
	Plan            plan.Tier  `json:"plan"`
	Status          Status     `json:"status"`
	StartDate       time.Time  `json:"startDate"`
	EndDate         *time.Time `json:"endDate"`
	TrialEndDate    *time.Time `json:"trialEndDate"`
	IsTrialActive   bool       `json:"isTrialActive"`
	LastPayment     *Payment   `json:"lastPayment"`
	NextBillingDate *time.Time `json:"nextBillingDate"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`
	// PreviousPlan records the tier held before the last cancellation,
	// kept for audit and support purposes.
	PreviousPlan plan.Tier `json:"previousPlan,omitempty"`
	Usage        Usage     `json:"usage"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Payment is the confirmation record of the last successful charge,
// passed through unchanged from the payment processor.
type Payment struct {
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	Method        string    `json:"method"`
	TransactionID string    `json:"transactionId"`
	PaidAt        time.Time `json:"paidAt"`
}

// IsTrialing returns true if the subscription is in an announced trial.
func (s *Subscription) IsTrialing() bool {
	return s.Status == StatusTrial && s.IsTrialActive
}

// IsPaid returns true for an active, paid-for subscription.
func (s *Subscription) IsPaid() bool {
	return s.Status == StatusActive && s.LastPayment != nil && !s.IsTrialActive
}

// IsTrialExpiredAt reports whether the trial window has lapsed at the given
// time. Expiry is a derived fact, never eagerly written back to the record.
// The boundary is strict: exactly at TrialEndDate the trial is still live.
func (s *Subscription) IsTrialExpiredAt(now time.Time) bool {
	if !s.IsTrialActive || s.TrialEndDate == nil {
		return false
	}
	return now.After(*s.TrialEndDate)
}

// TrialDaysRemainingAt returns the number of whole days left in the trial
// at the given time, rounding partial days up and flooring at 0.
func (s *Subscription) TrialDaysRemainingAt(now time.Time) int {
	if !s.IsTrialActive || s.TrialEndDate == nil {
		return 0
	}
	remaining := s.TrialEndDate.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Hours() / 24))
}

func (s *Subscription) clone() *Subscription {
	c := *s
	c.EndDate = cloneTime(s.EndDate)
	c.TrialEndDate = cloneTime(s.TrialEndDate)
	c.NextBillingDate = cloneTime(s.NextBillingDate)
	c.CancelledAt = cloneTime(s.CancelledAt)
	if s.LastPayment != nil {
		p := *s.LastPayment
		c.LastPayment = &p
	}
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
