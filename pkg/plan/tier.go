package plan

// Tier identifies a subscription level. Tiers form a strict total order
// free < pro < team < enterprise; comparison helpers below rely on it.
type Tier string

const (
	TierFree       Tier = "free"
	TierPro        Tier = "pro"
	TierTeam       Tier = "team"
	TierEnterprise Tier = "enterprise"
)

var tierRank = map[Tier]int{
	TierFree:       0,
	TierPro:        1,
	TierTeam:       2,
	TierEnterprise: 3,
}

// Tiers returns all known tiers in ascending order.
func Tiers() []Tier {
	return []Tier{TierFree, TierPro, TierTeam, TierEnterprise}
}

// ParseTier normalizes a raw tier identifier. Unknown values fall back to
// free rather than failing, so a data inconsistency never hard-locks a user
// out of the application.
func ParseTier(s string) Tier {
	t := Tier(s)
	if _, ok := tierRank[t]; ok {
		return t
	}
	return TierFree
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	_, ok := tierRank[t]
	return ok
}

// Meets reports whether t grants at least the access level of required.
// Unknown tiers on either side are treated as free.
func (t Tier) Meets(required Tier) bool {
	return t.rank() >= required.rank()
}

func (t Tier) rank() int {
	if r, ok := tierRank[t]; ok {
		return r
	}
	return tierRank[TierFree]
}

func (t Tier) String() string { return string(t) }
