package domain

// Tender is a single procurement opportunity after post-processing. Title is
// the only field guaranteed non-empty; everything else is best-effort.
type Tender struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Deadline     string   `json:"deadline"`
	Budget       string   `json:"budget"`
	Location     string   `json:"location"`
	Industry     string   `json:"industry"`
	Requirements []string `json:"requirements"`
	SourceURL    string   `json:"source_url"`
	ScrapedAt    string   `json:"scraped_at"`

	// Surfaced opportunistically when the source exposes them.
	TenderNumber    string `json:"tender_number,omitempty"`
	TenderID        string `json:"tender_id,omitempty"`
	TenderReference string `json:"tender_reference,omitempty"`
	TenderURL       string `json:"tender_url,omitempty"`
	PublishedDate   string `json:"published_date,omitempty"`
	DocumentURL     string `json:"document_url,omitempty"`
	RSSLink         string `json:"rss_link,omitempty"`
	IssueDate       string `json:"issue_date,omitempty"`
}
