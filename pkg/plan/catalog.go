package plan

import (
	"errors"
	"fmt"
	"slices"
)

// Catalog is an immutable lookup table of plans keyed by tier.
type Catalog struct {
	plans map[Tier]Plan
}

// NewCatalog builds a validated catalog from the given plans.
// The free tier must be present: it is the fallback used whenever
// a subscription references an unknown tier.
func NewCatalog(plans ...Plan) (Catalog, error) {
	byTier := make(map[Tier]Plan, len(plans))
	for _, p := range plans {
		if !p.Tier.Valid() {
			return Catalog{}, errors.Join(ErrInvalidCatalog,
				fmt.Errorf("unknown tier %q", p.Tier))
		}
		if _, dup := byTier[p.Tier]; dup {
			return Catalog{}, errors.Join(ErrInvalidCatalog,
				fmt.Errorf("duplicate tier %q", p.Tier))
		}
		byTier[p.Tier] = p.clone()
	}

	c := Catalog{plans: byTier}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// MustNewCatalog is like NewCatalog but panics on invalid configuration.
// Intended for static catalogs wired at startup.
func MustNewCatalog(plans ...Plan) Catalog {
	c, err := NewCatalog(plans...)
	if err != nil {
		panic(err)
	}
	return c
}

// Get returns the plan for the given tier, falling back to the free plan
// for unknown tiers so a bad tier value never locks a user out entirely.
func (c Catalog) Get(t Tier) Plan {
	if p, ok := c.plans[t]; ok {
		return p.clone()
	}
	return c.plans[TierFree].clone()
}

// Plans returns the catalog's plans in ascending tier order.
func (c Catalog) Plans() []Plan {
	out := make([]Plan, 0, len(c.plans))
	for _, t := range Tiers() {
		if p, ok := c.plans[t]; ok {
			out = append(out, p.clone())
		}
	}
	return out
}

// Validate checks the catalog's internal consistency: the free tier exists,
// no limit or trial length is negative (other than the Unlimited sentinel),
// and limits and feature sets grow monotonically with the tier order. The
// monotonicity check catches data-entry errors such as a new tier that
// forgets to include a lower tier's feature.
func (c Catalog) Validate() error {
	if _, ok := c.plans[TierFree]; !ok {
		return errors.Join(ErrInvalidCatalog, ErrFreeTierRequired)
	}

	for _, p := range c.plans {
		for name, limit := range map[string]int64{
			"board_limit":      p.BoardLimit,
			"member_limit":     p.MemberLimit,
			"storage_limit_mb": p.StorageLimitMB,
		} {
			if limit < Unlimited {
				return errors.Join(ErrInvalidCatalog,
					fmt.Errorf("tier %s has invalid %s: %d", p.Tier, name, limit))
			}
		}
		if p.TrialDays < 0 {
			return errors.Join(ErrInvalidCatalog,
				fmt.Errorf("tier %s has negative trial days: %d", p.Tier, p.TrialDays))
		}
	}

	ordered := c.Plans()
	for i := 1; i < len(ordered); i++ {
		lower, higher := ordered[i-1], ordered[i]

		for name, pair := range map[string][2]int64{
			"board_limit":      {lower.BoardLimit, higher.BoardLimit},
			"member_limit":     {lower.MemberLimit, higher.MemberLimit},
			"storage_limit_mb": {lower.StorageLimitMB, higher.StorageLimitMB},
		} {
			if !limitCovers(pair[1], pair[0]) {
				return errors.Join(ErrInvalidCatalog,
					fmt.Errorf("tier %s %s (%d) is below tier %s (%d)",
						higher.Tier, name, pair[1], lower.Tier, pair[0]))
			}
		}

		for _, f := range lower.Features {
			if !slices.Contains(higher.Features, f) {
				return errors.Join(ErrInvalidCatalog,
					fmt.Errorf("tier %s is missing feature %q granted by tier %s",
						higher.Tier, f, lower.Tier))
			}
		}
	}

	return nil
}

// limitCovers reports whether limit a meets or exceeds limit b,
// treating Unlimited as the maximum.
func limitCovers(a, b int64) bool {
	if a == Unlimited {
		return true
	}
	if b == Unlimited {
		return false
	}
	return a >= b
}
