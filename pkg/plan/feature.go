package plan

// Feature represents a plan-specific capability that can be enabled per tier.
type Feature string

const (
	FeatureBasicTemplates      Feature = "basic_templates"
	FeatureEmailSupport        Feature = "email_support"
	FeaturePremiumTemplates    Feature = "premium_templates"
	FeaturePrioritySupport     Feature = "priority_support"
	FeatureAdvancedAnalytics   Feature = "advanced_analytics"
	FeatureTimeTracking        Feature = "time_tracking"
	FeatureCustomFields        Feature = "custom_fields"
	FeaturePriorityLevels      Feature = "priority_levels"
	FeatureDueDates            Feature = "due_dates"
	FeatureFileAttachments     Feature = "file_attachments"
	FeatureBoardTemplates      Feature = "board_templates"
	FeatureExportData          Feature = "export_data"
	FeaturePhoneSupport        Feature = "phone_support"
	FeatureAdvancedPermissions Feature = "advanced_permissions"
	FeatureCustomIntegrations  Feature = "custom_integrations"
	FeatureAutomation          Feature = "automation"
	FeatureGuestAccess         Feature = "guest_access"
	FeatureTeamAnalytics       Feature = "team_analytics"
	FeatureBulkOperations      Feature = "bulk_operations"
	FeatureAdvancedSearch      Feature = "advanced_search"
	FeatureCalendarView        Feature = "calendar_view"
	FeatureDedicatedSupport    Feature = "dedicated_support"
	FeatureCustomDevelopment   Feature = "custom_development"
	FeatureOnPremise           Feature = "on_premise"
	FeatureAdvancedSecurity    Feature = "advanced_security"
	FeatureSLA                 Feature = "sla"
	FeatureAPIAccess           Feature = "api_access"
)
