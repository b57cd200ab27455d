package poll

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"tenderhunt-engine/internal/config"
	"tenderhunt-engine/internal/domain"
	"tenderhunt-engine/internal/email"
	"tenderhunt-engine/internal/proposal"
	"tenderhunt-engine/internal/rank"
	"tenderhunt-engine/internal/scrape"
	"tenderhunt-engine/internal/store"
)

const siteTimeout = 5 * time.Minute

type siteResult struct {
	site    config.Site
	tenders []domain.Tender
}

// PollOnce scrapes every configured site, scores the results, stores new
// tenders, and notifies for the ones that clear the qualifying score. Each
// site gets its own Scraper so rate-limiter state stays per-site.
func PollOnce(db *sql.DB, cfg config.Config, sender *email.Sender, onNewTender func(store.TenderRow)) (added int, err error) {
	runID := uuid.NewString()
	log.Printf("[poll] run %s starting, %d sites", runID, len(cfg.Sites))

	parent := context.Background()

	var g errgroup.Group
	var mu sync.Mutex
	var results []siteResult

	for _, site := range cfg.Sites {
		site := site
		g.Go(func() error {
			ctx, cancel := context.WithTimeout(parent, siteTimeout)
			defer cancel()

			scraper := scrape.New(cfg.Scraping)
			tenders := scraper.ScrapeWeb(ctx, site.URL, &site)
			log.Printf("[poll] site=%s tenders=%d", site.Name, len(tenders))

			mu.Lock()
			results = append(results, siteResult{site: site, tenders: tenders})
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	scorer := rank.NewProfileScorer(cfg.Company)
	writer := proposal.NewWriter(cfg.Company)

	insertCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	totalAdded := 0
	for _, res := range results {
		for _, t := range res.tenders {
			scored := scorer.Score(t)

			isNew, err := store.InsertTenderIfNew(insertCtx, db, t, scored.Score, scored.Justification, scored.DetailedScores)
			if err != nil {
				log.Printf("[poll] insert failed for %q: %v", t.Title, err)
				continue
			}
			if !isNew {
				continue
			}
			totalAdded++

			if onNewTender != nil {
				onNewTender(store.TenderRow{
					Tender:        t,
					Score:         scored.Score,
					Justification: scored.Justification,
					Scores:        scored.DetailedScores,
					SourceID:      store.ComputeSourceID(t),
				})
			}

			if scored.Score >= cfg.Scoring.NotifyMinScore {
				notify(cfg, sender, writer, t, scored)
			}
		}
	}

	log.Printf("[poll] run %s done added=%d", runID, totalAdded)
	return totalAdded, nil
}

func notify(cfg config.Config, sender *email.Sender, writer *proposal.Writer, t domain.Tender, scored rank.Result) {
	if sender == nil || !cfg.Email.Enabled {
		return
	}

	doc := writer.Generate(t)
	subject := fmt.Sprintf("New Tender Opportunity: %s (score %d)", t.Title, scored.Score)
	body := fmt.Sprintf(
		"A new tender scored %d/100 against the company profile.\n\n"+
			"Title: %s\nDeadline: %s\nBudget: %s\nLocation: %s\nSource: %s\n\n%s",
		scored.Score, t.Title, t.Deadline, t.Budget, t.Location, t.SourceURL, scored.Justification)
	sender.Send(subject, body, doc)
}
