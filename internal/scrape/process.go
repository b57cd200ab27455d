package scrape

import (
	"strings"
	"time"

	"tenderhunt-engine/internal/domain"
	"tenderhunt-engine/internal/scrape/extract"
	"tenderhunt-engine/internal/scrape/types"
	"tenderhunt-engine/internal/scrape/util"
)

// PostProcess turns raw candidates into finished tenders. Records without a
// usable title are dropped; source_url and scraped_at are always stamped
// regardless of what a strategy put there; descriptions are capped; deadlines
// that are not plain date literals are cleared.
func PostProcess(raw []types.RawTender, sourceURL string) []domain.Tender {
	now := time.Now().UTC().Format(time.RFC3339)

	out := make([]domain.Tender, 0, len(raw))
	for _, r := range raw {
		title := strings.TrimSpace(r.Str("title"))
		if len([]rune(title)) < 5 {
			continue
		}

		deadline := strings.TrimSpace(r.Str("deadline"))
		if !extract.ValidDeadline(deadline) {
			deadline = ""
		}

		out = append(out, domain.Tender{
			Title:        title,
			Description:  util.Truncate(r.Str("description"), 500),
			Deadline:     deadline,
			Budget:       r.Str("budget"),
			Location:     r.Str("location"),
			Industry:     r.Str("industry"),
			Requirements: r.StrSlice("requirements"),
			SourceURL:    sourceURL,
			ScrapedAt:    now,

			TenderNumber:    r.Str("tender_number"),
			TenderID:        r.Str("tender_id"),
			TenderReference: r.Str("tender_reference"),
			TenderURL:       r.Str("tender_url"),
			PublishedDate:   r.Str("published_date"),
			DocumentURL:     r.Str("document_url"),
			RSSLink:         r.Str("rss_link"),
			IssueDate:       r.Str("issue_date"),
		})
	}
	return out
}
