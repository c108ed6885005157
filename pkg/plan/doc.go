// Package plan defines the TaskFlow subscription tiers and their resource
// limits and feature grants.
//
// Tiers form a strict total order (free < pro < team < enterprise) with an
// accumulation invariant: a higher tier's limits and feature set must cover
// every lower tier's. Catalog.Validate enforces the invariant so a future
// catalog edit cannot silently drop a feature users already pay for.
//
// The catalog is pure data: lookups never fail. Unknown tiers fall back to
// the free plan, which keeps a user with a corrupted subscription record on
// the free tier instead of locked out.
//
// Usage:
//
//	catalog := plan.Default()
//	p := catalog.Get(plan.TierPro)
//	if p.HasFeature(plan.FeatureTimeTracking) {
//		// ...
//	}
//
// Deployments can override the built-in catalog from YAML:
//
//	src := plan.NewFileSource("plans.yml")
//	catalog, err := src.Load(ctx)
package plan
