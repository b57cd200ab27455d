package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"tenderhunt-engine/internal/scrape/types"
	"tenderhunt-engine/internal/scrape/util"
)

const maxClassElements = 20

var titleSelectors = []string{"h1", "h2", "h3", "h4", "h5", "h6", "a", "strong", "b", ".title"}

// FromElementText builds a raw record out of one listing element. The title
// comes from heading-ish children, falling back to the element's own text;
// everything else is scanned out of the combined text.
func FromElementText(el *goquery.Selection) (types.RawTender, bool) {
	text := util.CleanText(el.Text())
	if text == "" {
		return nil, false
	}

	var title string
	for _, sel := range titleSelectors {
		if v := util.CleanText(el.Find(sel).First().Text()); len([]rune(v)) > 5 {
			title = v
			break
		}
	}
	if title == "" {
		title = text
	}
	title = util.Truncate(title, 200)

	t := types.RawTender{"title": title}

	var desc string
	el.Find("p, span, div").EachWithBreak(func(_ int, child *goquery.Selection) bool {
		v := util.CleanText(child.Text())
		if len([]rune(v)) > 10 && v != title {
			desc = v
			return false
		}
		return true
	})
	if desc == "" && text != title {
		desc = text
	}
	if desc != "" {
		t["description"] = util.Truncate(desc, 500)
	}

	if d := ScanDate(text); d != "" {
		t["deadline"] = d
	}
	if b := ScanBudget(text); b != "" {
		t["budget"] = b
	}
	if l := ScanLocation(text); l != "" {
		t["location"] = l
	}
	if ind := ScanIndustry(text); ind != "" {
		t["industry"] = ind
	} else {
		t["industry"] = DefaultIndustry
	}
	return t, true
}

// KeywordClassElements finds container elements whose class mentions tender
// vocabulary and extracts each as a record. The scan is capped to keep noisy
// pages bounded.
func KeywordClassElements(doc *goquery.Document) []types.RawTender {
	var out []types.RawTender
	seen := 0
	doc.Find("div, tr, li, article").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		class, _ := el.Attr("class")
		if class == "" || !HasTenderKeyword(class) {
			return true
		}
		seen++
		if t, ok := FromElementText(el); ok {
			if title := t.Str("title"); !LooksLikeNav(title) {
				out = append(out, t)
			}
		}
		return seen < maxClassElements
	})
	return out
}

// KeywordTextElements falls back to elements whose own text mentions tender
// vocabulary. Only leaf-ish blocks are taken to avoid whole-page containers.
func KeywordTextElements(doc *goquery.Document) []types.RawTender {
	var out []types.RawTender
	seen := 0
	doc.Find("div, li, td, article").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if el.Children().Length() > 10 {
			return true
		}
		text := util.CleanText(el.Text())
		if len([]rune(text)) < minTitleLen || !HasTenderKeyword(text) {
			return true
		}
		seen++
		if t, ok := FromElementText(el); ok {
			if title := t.Str("title"); !LooksLikeNav(title) && len([]rune(title)) > minTitleLen {
				out = append(out, t)
			}
		}
		return seen < maxClassElements
	})
	return out
}

// Rendered extracts records from a fully rendered page: tables first, then
// keyword-classed containers, keeping the first ten plausible titles.
func Rendered(doc *goquery.Document) []types.RawTender {
	out := Tables(doc)

	for _, t := range KeywordClassElements(doc) {
		if len([]rune(t.Str("title"))) > minTitleLen {
			out = append(out, t)
		}
		if len(out) >= 10 {
			break
		}
	}

	if len(out) > 10 {
		out = out[:10]
	}

	var embedded []types.RawTender
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if strings.Contains(s.Text(), "{") {
			embedded = append(embedded, ScriptData(s.Text())...)
		}
	})
	return append(out, embedded...)
}
