package subscription

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/taskflow/pkg/plan"
)

// EventType identifies a lifecycle transition.
type EventType string

const (
	EventCreated          EventType = "subscription_created"
	EventTrialStarted     EventType = "trial_started"
	EventTrialPlanChanged EventType = "trial_plan_changed"
	EventUpgraded         EventType = "plan_upgraded"
	EventCancelled        EventType = "subscription_cancelled"
)

// Event is the audit record emitted on every lifecycle transition.
type Event struct {
	ID       uuid.UUID `json:"id"`
	UserID   string    `json:"userId"`
	Type     EventType `json:"type"`
	FromPlan plan.Tier `json:"fromPlan"`
	ToPlan   plan.Tier `json:"toPlan"`
	At       time.Time `json:"at"`
}

// EventSink receives lifecycle events. Sinks must be fast or hand off to a
// queue; they are called synchronously on the mutation path.
type EventSink func(Event)
