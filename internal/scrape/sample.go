package scrape

import "tenderhunt-engine/internal/scrape/types"

// SampleTenders returns canned records used when every strategy comes back
// empty and sample data is enabled, so downstream stages always have input
// during development.
func SampleTenders() []types.RawTender {
	return []types.RawTender{
		{
			"title":       "Cloud Migration Services for Government Agency",
			"description": "Seeking qualified vendors for migrating legacy systems to cloud infrastructure. Must have experience with government compliance requirements.",
			"deadline":    "2025-02-15",
			"budget":      "USD 250,000",
			"location":    "Kenya",
			"industry":    "Information Technology",
			"requirements": []string{
				"AWS Certified",
				"ISO 27001",
				"3+ similar projects",
			},
		},
		{
			"title":       "Cybersecurity Infrastructure Upgrade",
			"description": "Comprehensive security assessment and infrastructure upgrade for financial institution.",
			"deadline":    "2025-03-01",
			"budget":      "USD 180,000",
			"location":    "Tanzania",
			"industry":    "Information Technology",
			"requirements": []string{
				"Cybersecurity expertise",
				"Government compliance",
				"24/7 support",
			},
		},
	}
}
