package subscription

// Status represents the current state of a subscription record.
type Status string

const (
	StatusActive    Status = "active"
	StatusTrial     Status = "trial"
	StatusCancelled Status = "cancelled"
	// StatusExpired is reserved for trial-lapse detection paths; nothing in
	// the lifecycle writes it, but stored records carrying it are denied
	// access the same way cancelled ones are.
	StatusExpired Status = "expired"
)

// Counter names a usage counter on the subscription record. The values
// double as the persisted field names under usage.*.
type Counter string

const (
	CounterBoards  Counter = "boardsUsed"
	CounterMembers Counter = "membersUsed"
	CounterStorage Counter = "storageUsedMB"
)

// Valid reports whether c is a known usage counter.
func (c Counter) Valid() bool {
	switch c {
	case CounterBoards, CounterMembers, CounterStorage:
		return true
	}
	return false
}

// Usage holds per-user running totals compared against plan limits.
// Counters are adjusted by external actions (board creation, member
// invites, file uploads) and never inferred by this package.
type Usage struct {
	BoardsUsed    int64 `json:"boardsUsed"`
	MembersUsed   int64 `json:"membersUsed"`
	StorageUsedMB int64 `json:"storageUsedMB"`
}

// Get returns the value of the named counter.
func (u Usage) Get(c Counter) int64 {
	switch c {
	case CounterBoards:
		return u.BoardsUsed
	case CounterMembers:
		return u.MembersUsed
	case CounterStorage:
		return u.StorageUsedMB
	}
	return 0
}
