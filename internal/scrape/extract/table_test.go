package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return d
}

func TestTables_HeaderSkippedAndColumnsMapped(t *testing.T) {
	d := doc(t, `
<table>
  <tr><th>Ref</th><th>Title</th><th>Published</th><th>Closing</th></tr>
  <tr>
    <td>KE-ICT-2025001</td>
    <td>Supply and installation of data center equipment</td>
    <td>2025-01-10</td>
    <td>2025-02-15</td>
  </tr>
</table>`)

	out := Tables(d)
	require.Len(t, out, 1)
	assert.Equal(t, "KE-ICT-2025001", out[0].Str("tender_number"))
	assert.Equal(t, "Supply and installation of data center equipment", out[0].Str("title"))
	assert.Equal(t, "2025-02-15", out[0].Str("deadline"), "date in column 3 wins")
	assert.Equal(t, DefaultIndustry, out[0].Str("industry"))
}

func TestTables_ShortTitleRowDropped(t *testing.T) {
	d := doc(t, `
<table>
  <tr><th>a</th><th>b</th></tr>
  <tr><td>Too short</td><td>also tiny</td></tr>
</table>`)

	assert.Empty(t, Tables(d))
}

func TestTables_NavTitleDropped(t *testing.T) {
	d := doc(t, `
<table>
  <tr><th>a</th><th>b</th></tr>
  <tr>
    <td>Main navigation menu for the tenders portal</td>
    <td>Follow the links in the sidebar below</td>
  </tr>
</table>`)

	assert.Empty(t, Tables(d))
}

func TestTables_NonDateThirdColumnIsIssueDate(t *testing.T) {
	d := doc(t, `
<table>
  <tr><th>a</th><th>b</th><th>c</th></tr>
  <tr>
    <td>Consultancy for road safety awareness campaign</td>
    <td>Nationwide campaign over six months targeting drivers</td>
    <td>Open</td>
  </tr>
</table>`)

	out := Tables(d)
	require.Len(t, out, 1)
	assert.Equal(t, "", out[0].Str("deadline"))
	assert.Equal(t, "Open", out[0].Str("issue_date"))
	assert.Equal(t, "Nationwide campaign over six months targeting drivers", out[0].Str("description"))
}

func TestTables_RowCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("<table><tr><th>t</th><th>d</th></tr>")
	for i := 0; i < 30; i++ {
		b.WriteString("<tr><td>Tender for construction of rural classrooms</td><td>Multi-phase classroom construction programme</td></tr>")
	}
	b.WriteString("</table>")

	out := Tables(doc(t, b.String()))
	assert.Len(t, out, maxTableRows)
}

func TestTables_SingleRowTableIgnored(t *testing.T) {
	d := doc(t, `<table><tr><td>Just a layout table with one row of content</td><td>x</td></tr></table>`)
	assert.Empty(t, Tables(d))
}
