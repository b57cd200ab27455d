package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"tenderhunt-engine/internal/config"
	"tenderhunt-engine/internal/email"
	"tenderhunt-engine/internal/events"
	"tenderhunt-engine/internal/scrape/types"
	"tenderhunt-engine/internal/store"
)

type ScrapeHandler struct {
	DB           *sql.DB
	CfgVal       *atomic.Value // config.Config
	ScrapeStatus *atomic.Value // types.Status
	Hub          *events.Hub
	RunPollOnce  func(db *sql.DB, cfg config.Config, sender *email.Sender, onNewTender func(store.TenderRow)) (added int, err error)
}

func (h ScrapeHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.ScrapeStatus.Load().(types.Status)
	writeJSON(w, st)
}

func (h ScrapeHandler) Run(w http.ResponseWriter, r *http.Request) {
	st := h.ScrapeStatus.Load().(types.Status)
	if st.Running {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	h.ScrapeStatus.Store(types.Status{
		LastRunAt: time.Now().Format(time.RFC3339),
		Running:   true,
		LastError: "",
		LastAdded: 0,
		LastOkAt:  st.LastOkAt,
	})

	go func() {
		cfg := h.CfgVal.Load().(config.Config)
		added, err := h.RunPollOnce(h.DB, cfg, nil, func(row store.TenderRow) {
			b, _ := json.Marshal(row)
			h.Hub.Publish(events.MakeEvent("", "tender_created", 1, json.RawMessage(b)))
		})

		now := time.Now().Format(time.RFC3339)
		next := h.ScrapeStatus.Load().(types.Status)
		next.Running = false
		next.LastRunAt = now
		next.LastAdded = added
		if err != nil {
			next.LastError = err.Error()
		} else {
			next.LastError = ""
			next.LastOkAt = now
		}
		h.ScrapeStatus.Store(next)
	}()

	writeJSON(w, map[string]any{"ok": true})
}
