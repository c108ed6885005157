package plan

import "slices"

// Default returns the built-in TaskFlow catalog. Feature sets are built
// additively from the tier below so the accumulation invariant holds by
// construction.
func Default() Catalog {
	freeFeatures := []Feature{
		FeatureBasicTemplates,
		FeatureEmailSupport,
	}

	proFeatures := append(slices.Clone(freeFeatures),
		FeaturePremiumTemplates,
		FeaturePrioritySupport,
		FeatureAdvancedAnalytics,
		FeatureTimeTracking,
		FeatureCustomFields,
		FeaturePriorityLevels,
		FeatureDueDates,
		FeatureFileAttachments,
		FeatureBoardTemplates,
		FeatureExportData,
	)

	teamFeatures := append(slices.Clone(proFeatures),
		FeaturePhoneSupport,
		FeatureAdvancedPermissions,
		FeatureCustomIntegrations,
		FeatureAutomation,
		FeatureGuestAccess,
		FeatureTeamAnalytics,
		FeatureBulkOperations,
		FeatureAdvancedSearch,
		FeatureCalendarView,
	)

	enterpriseFeatures := append(slices.Clone(teamFeatures),
		FeatureDedicatedSupport,
		FeatureCustomDevelopment,
		FeatureOnPremise,
		FeatureAdvancedSecurity,
		FeatureSLA,
		FeatureAPIAccess,
	)

	return MustNewCatalog(
		Plan{
			Tier:           TierFree,
			Name:           "Free",
			BoardLimit:     3,
			MemberLimit:    5,
			StorageLimitMB: 10,
			Features:       freeFeatures,
			Price:          Money{Amount: 0, Currency: "USD"},
		},
		Plan{
			Tier:           TierPro,
			Name:           "Pro",
			BoardLimit:     50,
			MemberLimit:    25,
			StorageLimitMB: 100 * 1024,
			Features:       proFeatures,
			Price:          Money{Amount: 29900, Currency: "USD"},
			TrialDays:      14,
		},
		Plan{
			Tier:           TierTeam,
			Name:           "Team",
			BoardLimit:     200,
			MemberLimit:    100,
			StorageLimitMB: 500 * 1024,
			Features:       teamFeatures,
			Price:          Money{Amount: 59900, Currency: "USD"},
			TrialDays:      14,
		},
		Plan{
			Tier:           TierEnterprise,
			Name:           "Enterprise",
			BoardLimit:     Unlimited,
			MemberLimit:    Unlimited,
			StorageLimitMB: Unlimited,
			Features:       enterpriseFeatures,
			CustomPricing:  true,
			TrialDays:      14,
		},
	)
}
