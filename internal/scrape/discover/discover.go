package discover

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"tenderhunt-engine/internal/scrape/extract"
	"tenderhunt-engine/internal/scrape/types"
	"tenderhunt-engine/internal/scrape/util"
)

var documentExtensions = []string{".pdf", ".doc", ".docx", ".xls", ".xlsx"}

var linkKeywords = []string{"tender", "rfp", "request", "supply", "service"}

// Strategy probes for an undocumented JSON API behind a listing page by
// rewriting the URL through patterns seen across procurement portals. Two
// hosts get bespoke handlers because their markup defeats the generic paths.
type Strategy struct {
	client *resty.Client
}

func New(client *resty.Client) *Strategy {
	return &Strategy{client: client}
}

func (s *Strategy) Name() string { return "discover" }

func (s *Strategy) Attempt(ctx context.Context, url string) ([]types.RawTender, error) {
	switch {
	case strings.Contains(url, "nest.go.tz"):
		return s.nestTanzania(ctx, url)
	case strings.Contains(url, "finca.co.tz"):
		return s.fincaTanzania(ctx, url)
	}

	for _, candidate := range candidates(url) {
		if candidate == url {
			continue
		}
		var data any
		res, err := s.client.R().SetContext(ctx).SetResult(&data).Get(candidate)
		if err != nil || res.IsError() {
			continue
		}
		if strings.Contains(res.Header().Get("Content-Type"), "json") {
			if tenders := extract.FromAPIPayload(data); len(tenders) > 0 {
				return tenders, nil
			}
			continue
		}
		// A candidate answering with HTML may still carry embedded data.
		if tenders := embeddedFromHTML(res.String()); len(tenders) > 0 {
			return tenders, nil
		}
	}
	return nil, nil
}

func embeddedFromHTML(body string) []types.RawTender {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}
	if out := extract.Embedded(doc); len(out) > 0 {
		return out
	}
	var out []types.RawTender
	doc.Find("script").Each(func(_ int, script *goquery.Selection) {
		if strings.Contains(script.Text(), "{") {
			out = append(out, extract.ScriptData(script.Text())...)
		}
	})
	return out
}

func candidates(url string) []string {
	return []string{
		strings.Replace(url, "/website/Tenders/index", "/api/tenders", 1),
		strings.Replace(url, "/Public/Notice", "/api/notices", 1),
		strings.Replace(url, "/tenders/", "/api/tenders/", 1),
		url + "/api/tenders",
		url + "/api/opportunities",
		strings.Replace(url, "/tenders/published-tenders", "/api/tenders", 1),
		strings.Replace(url, "/tenders/published-tenders", "/api/opportunities", 1),
		strings.Replace(url, "/tenders/published-tenders", "/api/procurement", 1),
	}
}

// nestTanzania digs for embedded JSON data first, then inline script
// fragments, then any tender-worded text block.
func (s *Strategy) nestTanzania(ctx context.Context, url string) ([]types.RawTender, error) {
	doc, err := s.document(ctx, url)
	if err != nil {
		return nil, err
	}

	if out := extract.Embedded(doc); len(out) > 0 {
		return out, nil
	}

	var fromScripts []types.RawTender
	doc.Find("script").Each(func(_ int, script *goquery.Selection) {
		text := script.Text()
		low := strings.ToLower(text)
		if strings.Contains(low, "tenders") || strings.Contains(low, "opportunities") {
			fromScripts = append(fromScripts, extract.ScriptData(text)...)
		}
	})
	if len(fromScripts) > 0 {
		return fromScripts, nil
	}

	var out []types.RawTender
	doc.Find("div, p, span, li, td").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		text := util.CleanText(el.Text())
		if len([]rune(text)) <= 30 || !extract.HasTenderKeyword(text) || extract.LooksLikeNav(text) {
			return true
		}
		if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[") {
			return true
		}
		title := util.Truncate(text, 200)
		if len([]rune(title)) <= 20 {
			return true
		}
		out = append(out, types.RawTender{
			"title":       title,
			"description": util.Truncate(text, 500),
			"industry":    extract.DefaultIndustry,
			"location":    "Tanzania",
		})
		return false
	})
	return out, nil
}

// fincaTanzania treats document links as tender announcements, then falls
// back to the first meaningful tender-worded paragraph.
func (s *Strategy) fincaTanzania(ctx context.Context, url string) ([]types.RawTender, error) {
	doc, err := s.document(ctx, url)
	if err != nil {
		return nil, err
	}

	var out []types.RawTender
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !isDocumentLink(href) {
			return
		}
		text := util.CleanText(a.Text())
		if !hasLinkKeyword(text) {
			return
		}
		out = append(out, types.RawTender{
			"title":        text,
			"description":  "Tender document available at " + href,
			"industry":     extract.DefaultIndustry,
			"location":     "Tanzania",
			"document_url": href,
		})
	})

	if len(out) == 0 {
		doc.Find("div, p, span").EachWithBreak(func(_ int, el *goquery.Selection) bool {
			text := util.CleanText(el.Text())
			if len([]rune(text)) <= 20 || !hasLinkKeyword(text) {
				return true
			}
			out = append(out, types.RawTender{
				"title":       util.Truncate(text, 200),
				"description": util.Truncate(text, 500),
				"industry":    extract.DefaultIndustry,
				"location":    "Tanzania",
			})
			return false
		})
	}
	return out, nil
}

func (s *Strategy) document(ctx context.Context, url string) (*goquery.Document, error) {
	res, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("discover fetch %s: %w", url, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("discover fetch %s: status %d", url, res.StatusCode())
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.String()))
	if err != nil {
		return nil, fmt.Errorf("discover parse %s: %w", url, err)
	}
	return doc, nil
}

func isDocumentLink(href string) bool {
	low := strings.ToLower(href)
	for _, ext := range documentExtensions {
		if strings.Contains(low, ext) {
			return true
		}
	}
	return false
}

func hasLinkKeyword(text string) bool {
	low := strings.ToLower(text)
	for _, kw := range linkKeywords {
		if strings.Contains(low, kw) {
			return true
		}
	}
	return false
}
