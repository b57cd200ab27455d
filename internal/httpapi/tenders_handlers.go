package httpapi

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"tenderhunt-engine/internal/events"
	"tenderhunt-engine/internal/store"
)

type TendersHandler struct {
	DB  *sql.DB
	Hub *events.Hub
}

func (h TendersHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if v := q.Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	tenders, err := store.ListTenders(r.Context(), h.DB, store.ListTendersOpts{
		Sort:   q.Get("sort"),
		Window: q.Get("window"),
		Limit:  limit,
	})
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, tenders)
}

func (h TendersHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/tenders/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", 400)
		return
	}

	if _, err := h.DB.ExecContext(r.Context(), `DELETE FROM tenders WHERE id = ?;`, id); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, "tender_deleted", 1, map[string]any{"id": id}))
	writeJSON(w, map[string]any{"ok": true, "id": id})
}
