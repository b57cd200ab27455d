package httpapi

import (
	"database/sql"
	"sync/atomic"

	"tenderhunt-engine/internal/config"
	"tenderhunt-engine/internal/email"
	"tenderhunt-engine/internal/events"
	"tenderhunt-engine/internal/store"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Atomic stores
	CfgVal       *atomic.Value // stores config.Config
	ScrapeStatus *atomic.Value // stores types.Status

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Scrape entrypoint (inject for testability)
	RunPollOnce func(db *sql.DB, cfg config.Config, sender *email.Sender, onNewTender func(store.TenderRow)) (added int, err error)
}
