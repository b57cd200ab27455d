package rank

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"tenderhunt-engine/internal/domain"
)

// Maximum points per component. Together they total 100, so the overall
// score is the plain sum.
const (
	maxIndustry      = 20
	maxLocation      = 15
	maxBudget        = 20
	maxTechnical     = 20
	maxExperience    = 15
	maxCertification = 10
)

var budgetAmount = regexp.MustCompile(`[\d,]+(?:\.\d{2})?`)

var techKeywords = []string{"cloud", "migration", "security", "devops"}

var serviceKeywords = []string{"migration", "audit", "automation", "development"}

var wellKnownCerts = []string{"aws", "azure", "iso", "pmi"}

// ProfileScorer evaluates tenders against a fixed company profile with six
// weighted components. Missing tender fields earn a neutral mid score so
// sparse records are neither rewarded nor buried.
type ProfileScorer struct {
	profile domain.CompanyProfile
}

func NewProfileScorer(profile domain.CompanyProfile) *ProfileScorer {
	return &ProfileScorer{profile: profile}
}

func (s *ProfileScorer) Score(t domain.Tender) Result {
	type component struct {
		key           string
		score         int
		justification string
	}

	comps := []component{}
	add := func(key string, score int, why string) {
		comps = append(comps, component{key, score, why})
	}

	sc, why := s.industryMatch(t)
	add("industry_match", sc, why)
	sc, why = s.locationMatch(t)
	add("location_match", sc, why)
	sc, why = s.budgetMatch(t)
	add("budget_match", sc, why)
	sc, why = s.technicalMatch(t)
	add("technical_match", sc, why)
	sc, why = s.experienceMatch(t)
	add("experience_match", sc, why)
	sc, why = s.certificationMatch(t)
	add("certification_match", sc, why)

	total := 0
	detailed := make(map[string]int, len(comps))
	var justifications []string
	for _, c := range comps {
		total += c.score
		detailed[c.key] = c.score
		justifications = append(justifications, c.justification)
	}

	return Result{
		Score:          total,
		Justification:  overallJustification(detailed, justifications, total),
		DetailedScores: detailed,
		ScoringMethod:  "rule_based",
		ScoredAt:       time.Now().UTC().Format(time.RFC3339),
	}
}

func (s *ProfileScorer) industryMatch(t domain.Tender) (int, string) {
	industry := strings.ToLower(t.Industry)
	if industry == "" {
		return maxIndustry / 2, "Industry not specified in tender, assigned neutral score"
	}

	for _, focus := range s.profile.IndustryFocus {
		f := strings.ToLower(focus)
		if strings.Contains(industry, f) || strings.Contains(f, industry) {
			return maxIndustry, fmt.Sprintf("Perfect industry match: %s aligns with %s", t.Industry, focus)
		}
	}
	for _, focus := range s.profile.IndustryFocus {
		if wordsOverlap(industry, strings.ToLower(focus)) {
			return 15, fmt.Sprintf("Strong industry alignment: %s relates to %s", t.Industry, focus)
		}
	}
	for _, kw := range []string{"it", "technology", "software", "digital", "cloud"} {
		if strings.Contains(industry, kw) {
			return 12, fmt.Sprintf("Technology sector match: %s aligns with IT focus", t.Industry)
		}
	}
	return 5, fmt.Sprintf("Limited industry alignment: %s vs company focus areas", t.Industry)
}

func (s *ProfileScorer) locationMatch(t domain.Tender) (int, string) {
	location := strings.ToLower(t.Location)
	if location == "" {
		return 7, "Location not specified, assigned neutral score"
	}

	hq := strings.ToLower(s.profile.Headquarters)
	var focus []string
	for _, l := range s.profile.GeographicalFocus {
		focus = append(focus, strings.ToLower(l))
	}

	for _, l := range focus {
		if location == l {
			return maxLocation, fmt.Sprintf("Perfect location match: %s is in company's focus area", t.Location)
		}
	}
	if hq != "" && strings.Contains(hq, location) {
		return maxLocation, fmt.Sprintf("Perfect location match: %s is in company's focus area", t.Location)
	}

	all := append(append([]string{}, focus...), hq)
	for _, l := range s.profile.OtherLocations {
		all = append(all, strings.ToLower(l))
	}
	for _, l := range all {
		if l != "" && wordsOverlap(location, l) {
			return 12, fmt.Sprintf("Strong location match: %s aligns with %s", t.Location, l)
		}
	}

	if strings.Contains(location, "africa") {
		for _, l := range focus {
			if strings.Contains(l, "africa") {
				return 10, fmt.Sprintf("Regional match: %s aligns with Africa focus", t.Location)
			}
		}
	}
	return 3, fmt.Sprintf("Limited location alignment: %s vs company focus areas", t.Location)
}

func (s *ProfileScorer) budgetMatch(t domain.Tender) (int, string) {
	if t.Budget == "" {
		return maxBudget / 2, "Budget not specified, assigned neutral score"
	}

	min := s.profile.PreferredBudget.Min
	max := s.profile.PreferredBudget.Max
	if min == 0 {
		min = 20000
	}
	if max == 0 {
		max = 500000
	}

	m := budgetAmount.FindString(t.Budget)
	if m == "" {
		return maxBudget / 2, fmt.Sprintf("Budget format unclear: %s, assigned neutral score", t.Budget)
	}
	var value float64
	if _, err := fmt.Sscanf(strings.ReplaceAll(m, ",", ""), "%f", &value); err != nil {
		return maxBudget / 2, fmt.Sprintf("Budget parsing error: %s, assigned neutral score", t.Budget)
	}

	lo, hi := float64(min), float64(max)
	switch {
	case value >= lo && value <= hi:
		return maxBudget, fmt.Sprintf("Perfect budget match: $%.0f within preferred range ($%d-$%d)", value, min, max)
	case value < lo*0.5:
		return 5, fmt.Sprintf("Budget too small: $%.0f below minimum threshold", value)
	case value < lo:
		return 12, fmt.Sprintf("Budget below preferred range: $%.0f vs minimum $%d", value, min)
	case value > hi*2:
		return 8, fmt.Sprintf("Budget too large: $%.0f exceeds maximum threshold", value)
	default:
		return 15, fmt.Sprintf("Budget above preferred range: $%.0f vs maximum $%d", value, max)
	}
}

func (s *ProfileScorer) technicalMatch(t domain.Tender) (int, string) {
	if len(t.Requirements) == 0 {
		return maxTechnical / 2, "No specific technical requirements listed, assigned neutral score"
	}

	matches := 0
	for _, requirement := range t.Requirements {
		req := strings.ToLower(requirement)

		matched := false
		for _, tech := range s.profile.Technologies {
			tl := strings.ToLower(tech)
			if strings.Contains(req, tl) || strings.Contains(tl, req) {
				matches++
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		for _, service := range s.profile.CoreServices {
			if wordsOverlap(req, strings.ToLower(service)) {
				matches++
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		for _, cert := range wellKnownCerts {
			if strings.Contains(req, cert) {
				matches++
				break
			}
		}
	}

	score := matches * maxTechnical / len(t.Requirements)
	why := fmt.Sprintf("%d/%d requirements aligned", matches, len(t.Requirements))
	switch {
	case score >= 18:
		return score, "Excellent technical match: " + why
	case score >= 15:
		return score, "Strong technical match: " + why
	case score >= 10:
		return score, "Moderate technical match: " + why
	default:
		return score, "Limited technical match: " + why
	}
}

func (s *ProfileScorer) experienceMatch(t domain.Tender) (int, string) {
	if len(s.profile.PastProjects) == 0 {
		return 7, "No past projects available for comparison"
	}

	tenderText := strings.ToLower(t.Title + " " + t.Description)

	relevant := 0
	for _, project := range s.profile.PastProjects {
		projectText := strings.ToLower(project.Name + " " + project.Industry)
		if keywordsInBoth(tenderText, projectText, techKeywords) ||
			keywordsInBoth(tenderText, projectText, serviceKeywords) {
			relevant++
		}
	}

	score := relevant * maxExperience / len(s.profile.PastProjects)
	why := fmt.Sprintf("%d/%d relevant past projects", relevant, len(s.profile.PastProjects))
	switch {
	case score >= 12:
		return score, "Strong experience match: " + why
	case score >= 8:
		return score, "Moderate experience match: " + why
	default:
		return score, "Limited experience match: " + why
	}
}

func (s *ProfileScorer) certificationMatch(t domain.Tender) (int, string) {
	if len(t.Requirements) == 0 {
		return maxCertification / 2, "No specific certification requirements listed"
	}
	if len(s.profile.Certifications) == 0 {
		return 3, "Company has no certifications listed"
	}

	matches := 0
	for _, requirement := range t.Requirements {
		req := strings.ToLower(requirement)
		for _, cert := range s.profile.Certifications {
			cl := strings.ToLower(cert)
			if strings.Contains(req, cl) || strings.Contains(cl, req) || wordsOverlap(req, cl) {
				matches++
				break
			}
		}
	}

	score := matches * maxCertification / len(t.Requirements)
	why := fmt.Sprintf("%d/%d requirements met", matches, len(t.Requirements))
	switch {
	case score >= 8:
		return score, "Strong certification match: " + why
	case score >= 5:
		return score, "Moderate certification match: " + why
	default:
		return score, "Limited certification match: " + why
	}
}

func overallJustification(scores map[string]int, justifications []string, total int) string {
	var overall string
	switch {
	case total >= 80:
		overall = "Excellent match. Strong alignment across all criteria"
	case total >= 65:
		overall = "Strong match. Good alignment with minor gaps"
	case total >= 50:
		overall = "Moderate match. Some alignment but several areas need attention"
	default:
		overall = "Weak match. Limited alignment with company capabilities"
	}

	var strengths, weaknesses []string
	for _, key := range []string{"industry_match", "location_match", "budget_match", "technical_match", "experience_match", "certification_match"} {
		v := scores[key]
		label := titleCase(strings.ReplaceAll(key, "_", " "))
		if v >= 15 {
			strengths = append(strengths, label)
		} else if v <= 5 {
			weaknesses = append(weaknesses, label)
		}
	}

	parts := []string{overall}
	if len(strengths) > 0 {
		parts = append(parts, "Strengths: "+strings.Join(strengths, ", "))
	}
	if len(weaknesses) > 0 {
		parts = append(parts, "Areas for improvement: "+strings.Join(weaknesses, ", "))
	}

	var highlights []string
	for _, j := range justifications {
		low := strings.ToLower(j)
		if strings.Contains(low, "perfect") || strings.Contains(low, "strong") || strings.Contains(low, "excellent") {
			highlights = append(highlights, j)
		}
		if len(highlights) == 2 {
			break
		}
	}
	if len(highlights) > 0 {
		parts = append(parts, "Key highlights: "+strings.Join(highlights, "; "))
	}
	return strings.Join(parts, ". ")
}

// wordsOverlap reports whether any whitespace-separated word of one string
// appears in the other, in either direction.
func wordsOverlap(a, b string) bool {
	for _, w := range strings.Fields(b) {
		if strings.Contains(a, w) {
			return true
		}
	}
	for _, w := range strings.Fields(a) {
		if strings.Contains(b, w) {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func keywordsInBoth(a, b string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(a, kw) && strings.Contains(b, kw) {
			return true
		}
	}
	return false
}
