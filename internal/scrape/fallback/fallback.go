package fallback

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"tenderhunt-engine/internal/scrape/extract"
	"tenderhunt-engine/internal/scrape/types"
)

// session is one launched browser process. kill force-terminates it when the
// connection never became usable; cleanup removes its temp profile dir.
type session struct {
	controlURL string
	kill       func()
	cleanup    func()
}

// Strategy is the second browser engine, tried when headless Chrome via the
// devtools protocol wrapper fails. A missing or unlaunchable browser is not
// an error here, just an empty result, so the cascade can move on.
type Strategy struct {
	timeout time.Duration

	launch  func() (session, error)
	connect func(ctx context.Context, controlURL string) (*rod.Browser, error)
}

func New(timeout time.Duration) *Strategy {
	return &Strategy{
		timeout: timeout,
		launch:  launchBrowser,
		connect: connectBrowser,
	}
}

func (s *Strategy) Name() string { return "fallback" }

func (s *Strategy) Attempt(ctx context.Context, url string) ([]types.RawTender, error) {
	sess, err := s.launch()
	if err != nil {
		log.Printf("[fallback] browser launch unavailable: %v", err)
		return nil, nil
	}
	defer sess.cleanup()

	browser, err := s.connect(ctx, sess.controlURL)
	if err != nil {
		log.Printf("[fallback] browser connect failed: %v", err)
		sess.kill()
		return nil, nil
	}
	defer browser.Close()

	html, err := s.render(browser, url)
	if err != nil {
		return nil, fmt.Errorf("fallback render %s: %w", url, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("fallback parse %s: %w", url, err)
	}
	return extract.Rendered(doc), nil
}

func launchBrowser() (session, error) {
	l := launcher.New().Headless(true).NoSandbox(true)
	controlURL, err := l.Launch()
	if err != nil {
		return session{}, err
	}
	return session{controlURL: controlURL, kill: l.Kill, cleanup: l.Cleanup}, nil
}

func connectBrowser(ctx context.Context, controlURL string) (*rod.Browser, error) {
	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, err
	}
	return browser, nil
}

func (s *Strategy) render(browser *rod.Browser, url string) (string, error) {
	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Timeout(s.timeout)
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	return page.HTML()
}
