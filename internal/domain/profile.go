package domain

type BudgetRange struct {
	Min int `json:"min_budget" yaml:"min_budget"`
	Max int `json:"max_budget" yaml:"max_budget"`
}

type PastProject struct {
	Name     string `json:"name" yaml:"name"`
	Industry string `json:"industry" yaml:"industry"`
}

// CompanyProfile describes what the company can deliver. The scorer matches
// tenders against it.
type CompanyProfile struct {
	Name              string        `json:"company_name" yaml:"name"`
	IndustryFocus     []string      `json:"industry_focus" yaml:"industry_focus"`
	CoreServices      []string      `json:"core_services" yaml:"core_services"`
	Certifications    []string      `json:"certifications" yaml:"certifications"`
	Technologies      []string      `json:"relevant_technologies" yaml:"technologies"`
	YearsInOperation  int           `json:"years_in_operation" yaml:"years_in_operation"`
	Headquarters      string        `json:"headquarters" yaml:"headquarters"`
	GeographicalFocus []string      `json:"geographical_focus" yaml:"geographical_focus"`
	OtherLocations    []string      `json:"other_locations" yaml:"other_locations"`
	PastProjects      []PastProject `json:"past_projects" yaml:"past_projects"`
	PreferredBudget   BudgetRange   `json:"preferred_project_size" yaml:"preferred_budget"`
}
