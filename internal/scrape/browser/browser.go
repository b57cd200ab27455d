package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"tenderhunt-engine/internal/scrape/extract"
	"tenderhunt-engine/internal/scrape/types"
)

const settleDelay = 3 * time.Second

// Strategy renders the page in headless Chrome so script-built listings are
// present in the DOM before extraction.
type Strategy struct {
	timeout time.Duration
	retries int
}

func New(timeout time.Duration, retries int) *Strategy {
	if retries < 1 {
		retries = 1
	}
	return &Strategy{timeout: timeout, retries: retries}
}

func (s *Strategy) Name() string { return "browser" }

func (s *Strategy) Attempt(ctx context.Context, url string) ([]types.RawTender, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Headless,
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var lastErr error
	for attempt := 0; attempt < s.retries; attempt++ {
		html, err := s.render(browserCtx, url)
		if err != nil {
			lastErr = err
			continue
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			return nil, fmt.Errorf("browser parse %s: %w", url, err)
		}
		return extract.Rendered(doc), nil
	}
	return nil, fmt.Errorf("browser render %s: %w", url, lastErr)
}

func (s *Strategy) render(ctx context.Context, url string) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(settleDelay),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", err
	}
	return html, nil
}
