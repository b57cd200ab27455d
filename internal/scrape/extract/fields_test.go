package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenderhunt-engine/internal/scrape/types"
)

func TestTitle_AliasOrder(t *testing.T) {
	item := types.RawTender{
		"name":  "Network Upgrade Tender",
		"title": "Cloud Migration RFP",
	}
	assert.Equal(t, "Cloud Migration RFP", Title(item), "title alias wins over name")
}

func TestTitle_TooShortRejected(t *testing.T) {
	item := types.RawTender{"title": "RFP", "name": "Supply of ICT Equipment"}
	assert.Equal(t, "Supply of ICT Equipment", Title(item), "short title falls through to next alias")
}

func TestTitle_Empty(t *testing.T) {
	assert.Equal(t, "", Title(types.RawTender{}))
}

func TestDescription_CappedAt500(t *testing.T) {
	long := make([]rune, 600)
	for i := range long {
		long[i] = 'a'
	}
	item := types.RawTender{"description": string(long)}

	got := Description(item)
	assert.Equal(t, 503, len([]rune(got)))
	assert.Equal(t, "...", got[len(got)-3:])
}

func TestDeadline_FallsBackToDescriptionScan(t *testing.T) {
	item := types.RawTender{
		"description": "Submissions close on 2025-02-15 at noon.",
	}
	assert.Equal(t, "2025-02-15", Deadline(item))
}

func TestDeadline_AliasBeatsScan(t *testing.T) {
	item := types.RawTender{
		"closing_date": "15/02/2025",
		"description":  "mentions 2024-01-01 somewhere",
	}
	assert.Equal(t, "15/02/2025", Deadline(item))
}

func TestLocation_GazetteerScan(t *testing.T) {
	item := types.RawTender{
		"title":       "Fiber rollout",
		"description": "Deployment across Dar es Salaam and surrounding regions",
	}
	assert.Equal(t, "Dar es Salaam", Location(item))
}

func TestIndustry_DefaultWhenNothingMatches(t *testing.T) {
	item := types.RawTender{"title": "Supply of office furniture", "description": "chairs and desks"}
	assert.Equal(t, DefaultIndustry, Industry(item))
}

func TestIndustry_KeywordScan(t *testing.T) {
	item := types.RawTender{"title": "Hospital equipment maintenance", "description": "clinic support"}
	assert.Equal(t, "Healthcare", Industry(item))
}

func TestRequirements_NativeList(t *testing.T) {
	item := types.RawTender{"requirements": []any{"AWS Certified", "ISO 27001"}}
	assert.Equal(t, []string{"AWS Certified", "ISO 27001"}, Requirements(item))
}

func TestRequirements_SemicolonBeforeComma(t *testing.T) {
	item := types.RawTender{"criteria": "AWS, GCP experience; ISO 27001"}
	assert.Equal(t, []string{"AWS, GCP experience", "ISO 27001"}, Requirements(item))
}

func TestRequirements_SingleString(t *testing.T) {
	item := types.RawTender{"qualifications": "Registered contractor"}
	assert.Equal(t, []string{"Registered contractor"}, Requirements(item))
}

func TestScanBudget(t *testing.T) {
	assert.Equal(t, "USD 250,000", ScanBudget("Estimated value USD 250,000 excl VAT"))
	assert.Equal(t, "$ 99", ScanBudget("only $ 99"))
	assert.Equal(t, "", ScanBudget("no money here"))
}

func TestValidDeadline(t *testing.T) {
	assert.True(t, ValidDeadline("15/02/2025"))
	assert.True(t, ValidDeadline("2025-02-15"))
	assert.False(t, ValidDeadline("Friday next week"))
	assert.False(t, ValidDeadline("due 2025-02-15"), "must match the whole string")
	assert.False(t, ValidDeadline(""))
}

func TestIsReference(t *testing.T) {
	assert.True(t, IsReference("KE-ICT-2025001"))
	assert.False(t, IsReference("TND-001"))
	assert.False(t, IsReference("Supply of laptops"))
}

func TestLooksLikeNav(t *testing.T) {
	assert.True(t, LooksLikeNav("Main Navigation Menu"))
	assert.False(t, LooksLikeNav("Tender for road maintenance services"))
}

func TestFromAPIPayload_EnvelopeUnwrap(t *testing.T) {
	body := `{"data":[{"title":"Cloud Migration RFP","budget":"USD 100,000"}]}`
	var data any
	require.NoError(t, json.Unmarshal([]byte(body), &data))

	tenders := FromAPIPayload(data)
	require.Len(t, tenders, 1)
	assert.Equal(t, "Cloud Migration RFP", tenders[0].Str("title"))
	assert.Equal(t, "USD 100,000", tenders[0].Str("budget"))
	assert.Equal(t, DefaultIndustry, tenders[0].Str("industry"), "cloud keyword maps to IT")
}

func TestFromAPIPayload_TopLevelList(t *testing.T) {
	body := `[{"name":"Network upgrade works"},{"title":"ab"}]`
	var data any
	require.NoError(t, json.Unmarshal([]byte(body), &data))

	tenders := FromAPIPayload(data)
	require.Len(t, tenders, 1, "titleless item dropped")
	assert.Equal(t, "Network upgrade works", tenders[0].Str("title"))
}

func TestFromAPIPayload_BareDict(t *testing.T) {
	body := `{"title":"Single tender record","deadline":"2025-03-01"}`
	var data any
	require.NoError(t, json.Unmarshal([]byte(body), &data))

	tenders := FromAPIPayload(data)
	require.Len(t, tenders, 1)
	assert.Equal(t, "2025-03-01", tenders[0].Str("deadline"))
}

func TestFromAPIItem_Extras(t *testing.T) {
	item := map[string]any{
		"title":     "Data center build",
		"id":        float64(42),
		"reference": "TZ-NEST-100",
		"url":       "https://example.org/t/42",
	}
	out, ok := FromAPIItem(item)
	require.True(t, ok)
	assert.Equal(t, "42", out.Str("tender_id"))
	assert.Equal(t, "TZ-NEST-100", out.Str("tender_reference"))
	assert.Equal(t, "https://example.org/t/42", out.Str("tender_url"))
}
