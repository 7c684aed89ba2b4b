package goal

import "time"

type SubmitScopeDTO struct {
	HoursPerWeek        float64         `json:"hours_per_week"`
	TechStack           []string        `json:"tech_stack"`
	DefinitionOfDone    string          `json:"definition_of_done"`
	BackgroundLevel     BackgroundLevel `json:"background_level"`
	EstimatedTotalHours float64         `json:"estimated_total_hours"`
	ProjectedEndDate    *time.Time      `json:"projected_end_date,omitempty"`
}
