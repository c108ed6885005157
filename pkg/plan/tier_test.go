package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/taskflow/pkg/plan"
)

func TestTier_Meets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tier     plan.Tier
		required plan.Tier
		want     bool
	}{
		{"same tier meets itself", plan.TierPro, plan.TierPro, true},
		{"team meets pro requirement", plan.TierTeam, plan.TierPro, true},
		{"pro does not meet team requirement", plan.TierPro, plan.TierTeam, false},
		{"free meets free", plan.TierFree, plan.TierFree, true},
		{"free does not meet pro", plan.TierFree, plan.TierPro, false},
		{"enterprise meets everything", plan.TierEnterprise, plan.TierTeam, true},
		{"unknown tier treated as free", plan.Tier("platinum"), plan.TierPro, false},
		{"unknown requirement treated as free", plan.TierFree, plan.Tier("platinum"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.tier.Meets(tt.required))
		})
	}
}

func TestTier_Order(t *testing.T) {
	t.Parallel()

	tiers := plan.Tiers()
	assert.Equal(t, []plan.Tier{plan.TierFree, plan.TierPro, plan.TierTeam, plan.TierEnterprise}, tiers)

	// Every tier meets all tiers below it and none above it.
	for i, higher := range tiers {
		for j, lower := range tiers {
			assert.Equal(t, i >= j, higher.Meets(lower),
				"tier %s vs %s", higher, lower)
		}
	}
}

func TestParseTier(t *testing.T) {
	t.Parallel()

	assert.Equal(t, plan.TierTeam, plan.ParseTier("team"))
	assert.Equal(t, plan.TierFree, plan.ParseTier(""))
	assert.Equal(t, plan.TierFree, plan.ParseTier("gold"))
}
