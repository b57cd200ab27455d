package scrape

import (
	"context"
	"log"
	"time"

	"github.com/go-resty/resty/v2"

	"tenderhunt-engine/internal/config"
	"tenderhunt-engine/internal/domain"
	"tenderhunt-engine/internal/scrape/api"
	"tenderhunt-engine/internal/scrape/browser"
	"tenderhunt-engine/internal/scrape/discover"
	"tenderhunt-engine/internal/scrape/fallback"
	"tenderhunt-engine/internal/scrape/rss"
	"tenderhunt-engine/internal/scrape/static"
	"tenderhunt-engine/internal/scrape/types"
	"tenderhunt-engine/internal/scrape/util"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Scraper owns the per-site extraction cascade and its rate limiter. One
// Scraper serves one polling run per site, so the limiter state is not
// shared across sites.
type Scraper struct {
	cfg     config.Scraping
	client  *resty.Client
	limiter *util.Limiter

	apiStrategy *api.Strategy
	rssStrategy *rss.Strategy

	// Explicit strategies pinned by site scraper_type.
	explicit map[string]types.Strategy

	// Tried in order when no strategy is pinned; first non-empty wins.
	cascade []types.Strategy
}

func New(cfg config.Scraping) *Scraper {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	browserStrategy := browser.New(timeout, cfg.MaxRetries)
	fallbackStrategy := fallback.New(timeout)
	staticStrategy := static.New(client)
	discoverStrategy := discover.New(client)

	return &Scraper{
		cfg:         cfg,
		client:      client,
		limiter:     util.NewLimiter(cfg.RequestsPerMinute, cfg.DelaySeconds),
		apiStrategy: api.New(client),
		rssStrategy: rss.New(client),
		explicit: map[string]types.Strategy{
			"playwright": browserStrategy,
			"selenium":   fallbackStrategy,
			"requests":   staticStrategy,
		},
		cascade: []types.Strategy{
			browserStrategy,
			fallbackStrategy,
			staticStrategy,
			discoverStrategy,
		},
	}
}

// ScrapeWeb runs the full cascade for one page and returns finished tenders.
// It never returns an error: any failure inside a strategy is logged and the
// next one is tried, and a scrape that produces nothing yields sample data
// when configured, else nil.
func (s *Scraper) ScrapeWeb(ctx context.Context, pageURL string, site *config.Site) (out []domain.Tender) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[scrape] panic scraping %s: %v", pageURL, r)
			out = nil
		}
	}()

	log.Printf("[scrape] starting %s", pageURL)
	if err := s.limiter.WaitIfNeeded(ctx); err != nil {
		log.Printf("[scrape] canceled while rate limited: %v", err)
		return nil
	}

	if site != nil && site.APIURL != "" {
		if raw := s.attempt(ctx, s.apiStrategy, site.APIURL); len(raw) > 0 {
			return PostProcess(raw, pageURL)
		}
	}

	if site != nil && site.RSSURL != "" {
		if raw := s.attempt(ctx, s.rssStrategy, site.RSSURL); len(raw) > 0 {
			return PostProcess(raw, pageURL)
		}
	}

	if site != nil && site.ScraperType != "" && site.ScraperType != "auto" {
		if strat, ok := s.explicit[site.ScraperType]; ok {
			if raw := s.attempt(ctx, strat, pageURL); len(raw) > 0 {
				return PostProcess(raw, pageURL)
			}
		} else {
			log.Printf("[scrape] unknown scraper_type %q for %s", site.ScraperType, pageURL)
		}
	}

	for _, strat := range s.cascade {
		if raw := s.attempt(ctx, strat, pageURL); len(raw) > 0 {
			return PostProcess(raw, pageURL)
		}
	}

	if s.cfg.UseSampleData {
		log.Printf("[scrape] all strategies empty for %s, returning sample data", pageURL)
		return PostProcess(SampleTenders(), pageURL)
	}

	log.Printf("[scrape] all strategies empty for %s", pageURL)
	return nil
}

func (s *Scraper) attempt(ctx context.Context, strat types.Strategy, url string) []types.RawTender {
	raw, err := strat.Attempt(ctx, url)
	if err != nil {
		log.Printf("[scrape] strategy %s failed for %s: %v", strat.Name(), url, err)
		return nil
	}
	if len(raw) > 0 {
		log.Printf("[scrape] strategy %s yielded %d candidates for %s", strat.Name(), len(raw), url)
	}
	return raw
}
