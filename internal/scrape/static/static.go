package static

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"tenderhunt-engine/internal/scrape/extract"
	"tenderhunt-engine/internal/scrape/types"
)

// Strategy fetches raw HTML and runs an inner cascade over it: tables,
// keyword-classed containers, keyword text blocks, then embedded structured
// data. The first non-empty stage wins.
type Strategy struct {
	client *resty.Client
}

func New(client *resty.Client) *Strategy {
	return &Strategy{client: client}
}

func (s *Strategy) Name() string { return "static" }

func (s *Strategy) Attempt(ctx context.Context, url string) ([]types.RawTender, error) {
	res, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("static fetch %s: %w", url, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("static fetch %s: status %d", url, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.String()))
	if err != nil {
		return nil, fmt.Errorf("static parse %s: %w", url, err)
	}
	return Extract(doc), nil
}

// Extract runs the static-HTML cascade over a parsed document.
func Extract(doc *goquery.Document) []types.RawTender {
	if out := extract.Tables(doc); len(out) > 0 {
		return out
	}
	if out := extract.KeywordClassElements(doc); len(out) > 0 {
		return out
	}
	if out := extract.KeywordTextElements(doc); len(out) > 0 {
		return out
	}
	return extract.Embedded(doc)
}
