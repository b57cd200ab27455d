package rss

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"

	"tenderhunt-engine/internal/scrape/extract"
	"tenderhunt-engine/internal/scrape/types"
	"tenderhunt-engine/internal/scrape/util"
)

const maxFeedItems = 50

var (
	deadlineExtensions = []string{"deadline", "closing_date", "due_date", "expiry_date"}
	locationExtensions = []string{"location", "country", "region", "area"}
)

// Strategy parses an RSS or Atom feed. Procurement feeds often smuggle
// deadlines and locations into custom elements, so those are probed before
// falling back to scanning the summary text.
type Strategy struct {
	client *resty.Client
	parser *gofeed.Parser
}

func New(client *resty.Client) *Strategy {
	return &Strategy{client: client, parser: gofeed.NewParser()}
}

func (s *Strategy) Name() string { return "rss" }

func (s *Strategy) Attempt(ctx context.Context, url string) ([]types.RawTender, error) {
	res, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("rss fetch %s: %w", url, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("rss fetch %s: status %d", url, res.StatusCode())
	}

	feed, err := s.parser.ParseString(res.String())
	if err != nil {
		return nil, fmt.Errorf("rss parse %s: %w", url, err)
	}

	items := feed.Items
	if len(items) > maxFeedItems {
		items = items[:maxFeedItems]
	}

	var out []types.RawTender
	for _, item := range items {
		if t, ok := fromItem(item); ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func fromItem(item *gofeed.Item) (types.RawTender, bool) {
	title := util.CleanText(item.Title)
	if len([]rune(title)) <= 5 {
		return nil, false
	}

	summary := util.CleanText(item.Description)
	if summary == "" {
		summary = util.CleanText(item.Content)
	}

	t := types.RawTender{
		"title":    util.Truncate(title, 200),
		"industry": extract.DefaultIndustry,
	}
	if summary != "" {
		t["description"] = util.Truncate(summary, 500)
	}
	if item.Link != "" {
		t["rss_link"] = item.Link
	}
	if item.Published != "" {
		t["published_date"] = item.Published
	}

	if v := customField(item, deadlineExtensions); v != "" {
		t["deadline"] = v
	} else if d := extract.ScanDate(summary); d != "" {
		t["deadline"] = d
	}

	if v := customField(item, locationExtensions); v != "" {
		t["location"] = v
	} else if l := extract.ScanLocation(title + " " + summary); l != "" {
		t["location"] = l
	}

	if b := extract.ScanBudget(summary); b != "" {
		t["budget"] = b
	}
	if ind := extract.ScanIndustry(title + " " + summary); ind != "" {
		t["industry"] = ind
	}
	return t, true
}

// customField probes item extensions and custom elements for the first of
// the given names carrying a value.
func customField(item *gofeed.Item, names []string) string {
	if item.Custom != nil {
		for _, name := range names {
			if v := util.CleanText(item.Custom[name]); v != "" {
				return v
			}
		}
	}
	for _, extMap := range item.Extensions {
		for _, name := range names {
			for _, ext := range extMap[name] {
				if v := util.CleanText(ext.Value); v != "" {
					return v
				}
			}
		}
	}
	return ""
}
