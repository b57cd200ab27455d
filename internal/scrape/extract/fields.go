package extract

import (
	"regexp"
	"strings"

	"tenderhunt-engine/internal/scrape/types"
	"tenderhunt-engine/internal/scrape/util"
)

// Key aliases probed, in order, for each canonical field. Portals rarely
// agree on names, so every normalizer walks its list and takes the first
// value that qualifies.
var (
	titleKeys       = []string{"title", "name", "subject", "heading", "tender_title", "opportunity_title"}
	descriptionKeys = []string{"description", "summary", "content", "details", "scope", "objective"}
	deadlineKeys    = []string{"deadline", "closing_date", "due_date", "expiry_date", "submission_deadline", "end_date"}
	budgetKeys      = []string{"budget", "value", "amount", "estimated_value", "contract_value", "project_value"}
	locationKeys    = []string{"location", "country", "region", "area", "city", "state"}
	industryKeys    = []string{"industry", "sector", "category", "domain", "field"}
	requirementKeys = []string{"requirements", "criteria", "qualifications", "specifications", "conditions"}
)

var (
	datePattern       = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}[/-]\d{1,2}[/-]\d{1,2}`)
	dayFirstDeadline  = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{2,4}$`)
	yearFirstDeadline = regexp.MustCompile(`^\d{4}[/-]\d{1,2}[/-]\d{1,2}$`)
	budgetPattern     = regexp.MustCompile(`(?i)(\$|USD|EUR|GBP|KES|TZS)\s*([\d,]+(?:\.\d{2})?)`)
	referencePattern  = regexp.MustCompile(`^[A-Z]{2}-[A-Z]+-\d+`)
	keywordPattern    = regexp.MustCompile(`(?i)tender|opportunity|rfp|bid|procurement`)
)

// East-African places the sources talk about, scanned when no explicit
// location field exists.
var gazetteer = []string{
	"Kenya", "Nairobi", "Mombasa", "Kisumu", "Nakuru",
	"Tanzania", "Dar es Salaam", "Dodoma", "Arusha", "Mwanza",
	"Africa", "East Africa", "Sub-Saharan Africa",
}

var navKeywords = []string{"menu", "navigation", "header", "footer", "sidebar"}

const DefaultIndustry = "Information Technology"

var industryTable = []struct {
	Name     string
	Keywords []string
}{
	{DefaultIndustry, []string{"it", "ict", "technology", "software", "hardware", "digital", "cloud", "cybersecurity"}},
	{"Telecommunications", []string{"telecom", "communication", "network", "broadband", "fiber"}},
	{"Infrastructure", []string{"infrastructure", "construction", "engineering", "building"}},
	{"Healthcare", []string{"health", "medical", "hospital", "clinic"}},
	{"Education", []string{"education", "school", "university", "training"}},
	{"Finance", []string{"finance", "banking", "financial", "accounting"}},
}

// Title probes the title aliases and keeps the first value longer than five
// characters, capped at 200.
func Title(item types.RawTender) string {
	for _, k := range titleKeys {
		if v := item.Str(k); len([]rune(v)) > 5 {
			return util.Truncate(v, 200)
		}
	}
	return ""
}

func Description(item types.RawTender) string {
	for _, k := range descriptionKeys {
		if v := item.Str(k); len([]rune(v)) > 10 {
			return util.Truncate(v, 500)
		}
	}
	return ""
}

// Deadline probes the deadline aliases, then falls back to scanning the
// description for a date literal.
func Deadline(item types.RawTender) string {
	for _, k := range deadlineKeys {
		if v := item.Str(k); v != "" {
			return v
		}
	}
	return ScanDate(item.Str("description"))
}

func Budget(item types.RawTender) string {
	for _, k := range budgetKeys {
		if v := item.Str(k); v != "" {
			return v
		}
	}
	return ""
}

func Location(item types.RawTender) string {
	for _, k := range locationKeys {
		if v := item.Str(k); v != "" {
			return v
		}
	}
	return ScanLocation(item.Str("title") + " " + item.Str("description"))
}

func Industry(item types.RawTender) string {
	for _, k := range industryKeys {
		if v := item.Str(k); v != "" {
			return v
		}
	}
	if ind := ScanIndustry(item.Str("title") + " " + item.Str("description")); ind != "" {
		return ind
	}
	return DefaultIndustry
}

// Requirements accepts a native list as-is; a string is split on ";" first,
// then ",", else kept as a single requirement.
func Requirements(item types.RawTender) []string {
	for _, k := range requirementKeys {
		if list := item.StrSlice(k); len(list) > 0 {
			return list
		}
		s := item.Str(k)
		if s == "" {
			continue
		}
		var parts []string
		switch {
		case strings.Contains(s, ";"):
			parts = strings.Split(s, ";")
		case strings.Contains(s, ","):
			parts = strings.Split(s, ",")
		default:
			return []string{s}
		}
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// ScanDate returns the first date literal found in s, in either D/M/Y or
// Y/M/D shape, or "".
func ScanDate(s string) string {
	return datePattern.FindString(s)
}

// ScanBudget returns "TOKEN AMOUNT" for the first currency mention in s.
func ScanBudget(s string) string {
	m := budgetPattern.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1] + " " + m[2]
}

func ScanLocation(s string) string {
	low := strings.ToLower(s)
	for _, place := range gazetteer {
		if strings.Contains(low, strings.ToLower(place)) {
			return place
		}
	}
	return ""
}

func ScanIndustry(s string) string {
	low := strings.ToLower(s)
	for _, row := range industryTable {
		for _, kw := range row.Keywords {
			if strings.Contains(low, kw) {
				return row.Name
			}
		}
	}
	return ""
}

// ValidDeadline reports whether s matches one of the two accepted date
// shapes exactly.
func ValidDeadline(s string) bool {
	return dayFirstDeadline.MatchString(s) || yearFirstDeadline.MatchString(s)
}

func IsReference(s string) bool {
	return referencePattern.MatchString(s)
}

// HasTenderKeyword reports whether s mentions tender-ish vocabulary.
func HasTenderKeyword(s string) bool {
	return keywordPattern.MatchString(s)
}

// LooksLikeNav flags navigation/boilerplate text that should never become a
// tender title.
func LooksLikeNav(s string) bool {
	low := strings.ToLower(s)
	for _, kw := range navKeywords {
		if strings.Contains(low, kw) {
			return true
		}
	}
	return false
}
