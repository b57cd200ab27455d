package rank

import "tenderhunt-engine/internal/domain"

// Result is one tender evaluated against the company profile. Score is
// 0-100; DetailedScores breaks it down per component.
type Result struct {
	Score          int            `json:"score"`
	Justification  string         `json:"justification"`
	DetailedScores map[string]int `json:"detailed_scores"`
	ScoringMethod  string         `json:"scoring_method"`
	ScoredAt       string         `json:"scored_at"`
}

type Scorer interface {
	Score(t domain.Tender) Result
}
