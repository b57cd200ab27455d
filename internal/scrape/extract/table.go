package extract

import (
	"github.com/PuerkitoBio/goquery"

	"tenderhunt-engine/internal/scrape/types"
	"tenderhunt-engine/internal/scrape/util"
)

const (
	maxTableRows = 20
	minTitleLen  = 20
)

// Tables extracts candidate records from every table in the document. Row 0
// is assumed to be a header; data rows are positional: reference/title,
// title/description, dates. Rows with short or navigation-looking titles are
// dropped.
func Tables(doc *goquery.Document) []types.RawTender {
	var out []types.RawTender
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		out = append(out, singleTable(table)...)
	})
	return out
}

func singleTable(table *goquery.Selection) []types.RawTender {
	rows := table.Find("tr")
	if rows.Length() < 2 {
		return nil
	}

	var out []types.RawTender
	taken := 0
	rows.Each(func(i int, row *goquery.Selection) {
		if i == 0 || taken >= maxTableRows {
			return
		}
		cells := cellTexts(row)
		if len(cells) < 2 {
			return
		}
		taken++

		t := fromTableRow(cells)
		title := t.Str("title")
		if title == "" && t.Str("tender_number") != "" {
			title = t.Str("tender_number")
			t["title"] = title
		}
		if len([]rune(title)) <= minTitleLen || LooksLikeNav(title) {
			return
		}
		out = append(out, t)
	})
	return out
}

func cellTexts(row *goquery.Selection) []string {
	var cells []string
	row.Find("td").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, util.CleanText(cell.Text()))
	})
	return cells
}

func fromTableRow(cells []string) types.RawTender {
	t := types.RawTender{}

	if len(cells) >= 1 && len([]rune(cells[0])) > 5 {
		if IsReference(cells[0]) {
			t["tender_number"] = cells[0]
		} else if len([]rune(cells[0])) > minTitleLen {
			t["title"] = cells[0]
		}
	}

	if len(cells) >= 2 && len([]rune(cells[1])) > 10 {
		if t.Str("title") == "" {
			t["title"] = cells[1]
		} else {
			t["description"] = cells[1]
		}
	}

	if len(cells) >= 3 && cells[2] != "" {
		if d := ScanDate(cells[2]); d != "" {
			t["deadline"] = d
		} else {
			t["issue_date"] = cells[2]
		}
	}

	// A date in column 3 is the closing date and wins over column 2.
	if len(cells) >= 4 && cells[3] != "" {
		if d := ScanDate(cells[3]); d != "" {
			t["deadline"] = d
		}
	}

	t["industry"] = DefaultIndustry
	return t
}
