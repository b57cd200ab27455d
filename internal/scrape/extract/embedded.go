package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"tenderhunt-engine/internal/scrape/types"
	"tenderhunt-engine/internal/scrape/util"
)

// JSON-ish fragments inside inline scripts that tend to hold listing data.
var scriptDataPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\{[^{}]*"tender"[^{}]*\})`),
	regexp.MustCompile(`(?i)(\{[^{}]*"opportunity"[^{}]*\})`),
	regexp.MustCompile(`(?i)(\{[^{}]*"rfp"[^{}]*\})`),
	regexp.MustCompile(`(?i)(\[[^\[\]]*\{[^{}]*"title"[^{}]*\}[^\[\]]*\])`),
}

// Embedded pulls structured data out of a page: JSON-LD blocks first, then
// data-* attributes on elements that mention tender vocabulary.
func Embedded(doc *goquery.Document) []types.RawTender {
	var out []types.RawTender

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		var data any
		if err := json.Unmarshal([]byte(text), &data); err != nil {
			return
		}
		switch v := data.(type) {
		case map[string]any:
			if t, ok := Structured(v); ok {
				out = append(out, t)
			}
		case []any:
			for _, item := range v {
				if m, ok := item.(map[string]any); ok {
					if t, ok := Structured(m); ok {
						out = append(out, t)
					}
				}
			}
		}
	})

	out = append(out, dataAttributes(doc)...)
	return out
}

func dataAttributes(doc *goquery.Document) []types.RawTender {
	var out []types.RawTender
	doc.Find("[data-title], [data-name], [data-tender], [data-description]").Each(func(_ int, el *goquery.Selection) {
		attrs := map[string]string{}
		for _, a := range el.Nodes[0].Attr {
			if strings.HasPrefix(a.Key, "data-") {
				attrs[a.Key] = a.Val
			}
		}
		if len(attrs) == 0 || !HasTenderKeyword(fmt.Sprint(attrs)) {
			return
		}

		t := types.RawTender{}
		title := attrs["data-title"]
		if title == "" {
			title = attrs["data-name"]
		}
		if title == "" {
			title = util.Truncate(util.CleanText(el.Text()), 200)
		}
		if title == "" {
			return
		}
		t["title"] = title

		if v := attrs["data-description"]; v != "" {
			t["description"] = util.Truncate(v, 500)
		} else if v := attrs["data-summary"]; v != "" {
			t["description"] = util.Truncate(v, 500)
		}
		if v := attrs["data-deadline"]; v != "" {
			t["deadline"] = v
		} else if v := attrs["data-closing-date"]; v != "" {
			t["deadline"] = v
		}
		if v := attrs["data-budget"]; v != "" {
			t["budget"] = v
		}
		t["industry"] = DefaultIndustry
		out = append(out, t)
	})
	return out
}

// ScriptData scans inline JavaScript for JSON fragments that look like
// listings and runs any parseable ones through the structured-data parser.
func ScriptData(script string) []types.RawTender {
	var out []types.RawTender
	for _, pat := range scriptDataPatterns {
		for _, m := range pat.FindAllString(script, -1) {
			cleaned := strings.ReplaceAll(m, "'", `"`)
			cleaned = strings.ReplaceAll(cleaned, `\`, "")

			var data any
			if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
				continue
			}
			switch v := data.(type) {
			case map[string]any:
				if t, ok := Structured(v); ok {
					out = append(out, t)
				}
			case []any:
				for _, item := range v {
					if m, ok := item.(map[string]any); ok {
						if t, ok := Structured(m); ok {
							out = append(out, t)
						}
					}
				}
			}
		}
	}
	return out
}

// Structured interprets one JSON-LD / embedded object as a tender
// candidate. Organization-style blocks and anything without tender
// vocabulary are rejected.
func Structured(data map[string]any) (types.RawTender, bool) {
	switch data["@type"] {
	case "Organization", "WebSite", "WebPage":
		return nil, false
	}
	if !HasTenderKeyword(fmt.Sprint(data)) {
		return nil, false
	}

	raw := types.RawTender(data)
	t := types.RawTender{}

	title := raw.Str("name")
	if title == "" {
		title = raw.Str("title")
	}
	if title == "" {
		title = util.Truncate(raw.Str("description"), 200)
	}
	if title == "" {
		return nil, false
	}
	t["title"] = title

	if v := raw.Str("description"); v != "" {
		t["description"] = util.Truncate(v, 500)
	}
	if v := raw.Str("closingDate"); v != "" {
		t["deadline"] = v
	} else if v := raw.Str("dueDate"); v != "" {
		t["deadline"] = v
	}
	if v := raw.Str("budget"); v != "" {
		t["budget"] = v
	}
	switch loc := data["location"].(type) {
	case map[string]any:
		t["location"] = types.RawTender(loc).Str("name")
	case string:
		t["location"] = loc
	}

	t["industry"] = DefaultIndustry
	return t, true
}
