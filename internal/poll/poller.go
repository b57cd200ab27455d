package poll

import (
	"database/sql"
	"encoding/json"
	"log"
	"sync/atomic"
	"time"

	"tenderhunt-engine/internal/config"
	"tenderhunt-engine/internal/email"
	"tenderhunt-engine/internal/events"
	"tenderhunt-engine/internal/scrape/types"
	"tenderhunt-engine/internal/secrets"
	"tenderhunt-engine/internal/store"
)

// StartPoller runs the scrape pipeline on the configured interval. The
// config is reloaded from the atomic.Value every tick so edits apply without
// a restart.
func StartPoller(db *sql.DB, cfgVal *atomic.Value, scrapeStatus *atomic.Value, hub *events.Hub) {
	go func() {
		for {
			cfgAny := cfgVal.Load()
			if cfgAny == nil {
				time.Sleep(time.Second)
				continue
			}
			cfg := cfgAny.(config.Config)

			RunOnce(db, cfg, scrapeStatus, hub)

			interval := time.Duration(cfg.Polling.IntervalSeconds) * time.Second
			time.Sleep(interval)
		}
	}()
}

// RunOnce executes one poll pass and records the outcome in scrapeStatus.
func RunOnce(db *sql.DB, cfg config.Config, scrapeStatus *atomic.Value, hub *events.Hub) {
	st := loadStatus(scrapeStatus)
	if st.Running {
		log.Printf("[poll] previous run still in progress, skipping")
		return
	}
	st.Running = true
	st.LastRunAt = time.Now().Format(time.RFC3339)
	scrapeStatus.Store(st)

	added, err := PollOnce(db, cfg, buildSender(cfg), func(row store.TenderRow) {
		b, _ := json.Marshal(row)
		hub.Publish(events.MakeEvent("", "tender_created", 1, json.RawMessage(b)))
	})

	st = loadStatus(scrapeStatus)
	st.Running = false
	st.LastAdded = added
	if err != nil {
		st.LastError = err.Error()
		log.Printf("[poll] error: %v", err)
	} else {
		st.LastError = ""
		st.LastOkAt = time.Now().Format(time.RFC3339)
		log.Printf("[poll] ok added=%d", added)
	}
	scrapeStatus.Store(st)
}

func loadStatus(v *atomic.Value) types.Status {
	if st, ok := v.Load().(types.Status); ok {
		return st
	}
	return types.Status{}
}

func buildSender(cfg config.Config) *email.Sender {
	if !cfg.Email.Enabled {
		return nil
	}
	resendKey, err := secrets.GetResendAPIKey(secrets.ResendKeyringAccount(cfg))
	if err != nil {
		log.Printf("[poll] %v", err)
	}
	smtpPassword, err := secrets.GetSMTPPassword(secrets.SMTPKeyringAccount(cfg))
	if err != nil && cfg.Email.SMTP.Host != "" {
		log.Printf("[poll] %v", err)
	}
	return email.NewSender(cfg.Email, resendKey, smtpPassword)
}
