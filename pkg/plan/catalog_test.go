package plan_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/taskflow/pkg/plan"
)

func TestDefaultCatalog_Monotonicity(t *testing.T) {
	t.Parallel()

	catalog := plan.Default()
	require.NoError(t, catalog.Validate())

	plans := catalog.Plans()
	require.Len(t, plans, 4)

	for i := 1; i < len(plans); i++ {
		lower, higher := plans[i-1], plans[i]

		// Feature accumulation: everything granted below is granted above.
		for _, f := range lower.Features {
			assert.True(t, higher.HasFeature(f),
				"tier %s should include feature %s from tier %s", higher.Tier, f, lower.Tier)
		}

		assert.True(t, covers(higher.BoardLimit, lower.BoardLimit),
			"board limit should not shrink from %s to %s", lower.Tier, higher.Tier)
		assert.True(t, covers(higher.MemberLimit, lower.MemberLimit),
			"member limit should not shrink from %s to %s", lower.Tier, higher.Tier)
		assert.True(t, covers(higher.StorageLimitMB, lower.StorageLimitMB),
			"storage limit should not shrink from %s to %s", lower.Tier, higher.Tier)
	}
}

func covers(a, b int64) bool {
	if a == plan.Unlimited {
		return true
	}
	if b == plan.Unlimited {
		return false
	}
	return a >= b
}

func TestDefaultCatalog_Values(t *testing.T) {
	t.Parallel()

	catalog := plan.Default()

	free := catalog.Get(plan.TierFree)
	assert.Equal(t, int64(3), free.BoardLimit)
	assert.Equal(t, int64(5), free.MemberLimit)
	assert.Equal(t, int64(10), free.StorageLimitMB)
	assert.Equal(t, int64(0), free.Price.Amount)
	assert.False(t, free.CustomPricing)

	pro := catalog.Get(plan.TierPro)
	assert.Equal(t, int64(50), pro.BoardLimit)
	assert.Equal(t, 14, pro.TrialDays)
	assert.True(t, pro.HasFeature(plan.FeaturePremiumTemplates))
	assert.True(t, pro.HasFeature(plan.FeatureBasicTemplates))

	enterprise := catalog.Get(plan.TierEnterprise)
	assert.Equal(t, plan.Unlimited, enterprise.BoardLimit)
	assert.Equal(t, plan.Unlimited, enterprise.MemberLimit)
	assert.Equal(t, plan.Unlimited, enterprise.StorageLimitMB)
	assert.True(t, enterprise.CustomPricing)
}

func TestCatalog_UnknownTierFallsBackToFree(t *testing.T) {
	t.Parallel()

	catalog := plan.Default()
	p := catalog.Get(plan.Tier("platinum"))
	assert.Equal(t, plan.TierFree, p.Tier)
}

func TestNewCatalog_RejectsInvalid(t *testing.T) {
	t.Parallel()

	t.Run("missing free tier", func(t *testing.T) {
		t.Parallel()
		_, err := plan.NewCatalog(plan.Plan{Tier: plan.TierPro, BoardLimit: 10})
		require.Error(t, err)
		assert.ErrorIs(t, err, plan.ErrInvalidCatalog)
		assert.ErrorIs(t, err, plan.ErrFreeTierRequired)
	})

	t.Run("feature dropped by higher tier", func(t *testing.T) {
		t.Parallel()
		_, err := plan.NewCatalog(
			plan.Plan{
				Tier:     plan.TierFree,
				Features: []plan.Feature{plan.FeatureBasicTemplates},
			},
			plan.Plan{
				Tier:       plan.TierPro,
				BoardLimit: 50,
				Features:   []plan.Feature{plan.FeaturePremiumTemplates},
			},
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, plan.ErrInvalidCatalog)
	})

	t.Run("shrinking limit", func(t *testing.T) {
		t.Parallel()
		_, err := plan.NewCatalog(
			plan.Plan{Tier: plan.TierFree, BoardLimit: 10},
			plan.Plan{Tier: plan.TierPro, BoardLimit: 3},
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, plan.ErrInvalidCatalog)
	})

	t.Run("limited above unlimited", func(t *testing.T) {
		t.Parallel()
		_, err := plan.NewCatalog(
			plan.Plan{Tier: plan.TierFree, BoardLimit: plan.Unlimited},
			plan.Plan{Tier: plan.TierPro, BoardLimit: 100},
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, plan.ErrInvalidCatalog)
	})

	t.Run("unknown tier", func(t *testing.T) {
		t.Parallel()
		_, err := plan.NewCatalog(plan.Plan{Tier: plan.Tier("platinum")})
		require.Error(t, err)
		assert.ErrorIs(t, err, plan.ErrInvalidCatalog)
	})

	t.Run("negative trial days", func(t *testing.T) {
		t.Parallel()
		_, err := plan.NewCatalog(plan.Plan{Tier: plan.TierFree, TrialDays: -1})
		require.Error(t, err)
		assert.ErrorIs(t, err, plan.ErrInvalidCatalog)
	})
}

func TestFileSource(t *testing.T) {
	t.Parallel()

	t.Run("loads valid catalog", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "plans.yml")
		data := `
- tier: free
  name: Free
  board_limit: 3
  member_limit: 5
  storage_limit_mb: 10
  features: [basic_templates]
  price: {amount: 0, currency: USD}
- tier: pro
  name: Pro
  board_limit: 50
  member_limit: 25
  storage_limit_mb: 102400
  features: [basic_templates, premium_templates]
  price: {amount: 29900, currency: USD}
  trial_days: 14
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		catalog, err := plan.NewFileSource(path).Load(context.Background())
		require.NoError(t, err)

		pro := catalog.Get(plan.TierPro)
		assert.Equal(t, "Pro", pro.Name)
		assert.Equal(t, int64(50), pro.BoardLimit)
		assert.Equal(t, 14, pro.TrialDays)
		assert.True(t, pro.HasFeature(plan.FeaturePremiumTemplates))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := plan.NewFileSource(filepath.Join(t.TempDir(), "nope.yml")).Load(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, plan.ErrFailedToLoadPlans)
	})

	t.Run("invalid catalog rejected", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "plans.yml")
		data := `
- tier: pro
  board_limit: 50
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		_, err := plan.NewFileSource(path).Load(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, plan.ErrFailedToLoadPlans)
	})
}
