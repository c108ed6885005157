package plan

import "slices"

// Unlimited indicates no limit for a resource (-1 keeps the value storable
// as a plain integer).
const Unlimited int64 = -1

// Money represents a monetary amount in the smallest currency unit.
// For example, $299.00 USD would be Amount: 29900, Currency: "USD".
type Money struct {
	Amount   int64  `yaml:"amount" json:"amount"`
	Currency string `yaml:"currency" json:"currency"`
}

// Plan describes a subscription tier and its resource/feature constraints.
type Plan struct {
	Tier           Tier      `yaml:"tier" json:"tier"`
	Name           string    `yaml:"name" json:"name"`
	BoardLimit     int64     `yaml:"board_limit" json:"boardLimit"`
	MemberLimit    int64     `yaml:"member_limit" json:"memberLimit"`
	StorageLimitMB int64     `yaml:"storage_limit_mb" json:"storageLimitMB"`
	Features       []Feature `yaml:"features" json:"features"`
	Price          Money     `yaml:"price" json:"price"`
	// CustomPricing marks tiers without a fixed price (enterprise requires
	// manual sales contact); Price is ignored when set.
	CustomPricing bool `yaml:"custom_pricing" json:"customPricing"`
	TrialDays     int  `yaml:"trial_days" json:"trialDays"`
}

// HasFeature reports whether the plan grants the given feature.
func (p Plan) HasFeature(f Feature) bool {
	return slices.Contains(p.Features, f)
}

func (p Plan) clone() Plan {
	c := p
	c.Features = slices.Clone(p.Features)
	return c
}
