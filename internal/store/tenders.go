package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"tenderhunt-engine/internal/domain"
	"tenderhunt-engine/internal/scrape/util"
)

type TenderRow struct {
	ID            int64          `json:"id"`
	Tender        domain.Tender  `json:"tender"`
	Score         int            `json:"score"`
	Justification string         `json:"justification"`
	Scores        map[string]int `json:"detailed_scores,omitempty"`
	SourceID      string         `json:"source_id"`
}

type ListTendersOpts struct {
	Sort   string // score | scraped_at | title
	Window string // 24h | 7d | all
	Limit  int
}

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS tenders (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  deadline TEXT NOT NULL DEFAULT '',
  budget TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  industry TEXT NOT NULL DEFAULT '',
  requirements TEXT NOT NULL DEFAULT '[]',
  source_url TEXT NOT NULL,
  scraped_at TEXT NOT NULL,
  score INTEGER NOT NULL DEFAULT 0,
  justification TEXT NOT NULL DEFAULT '',
  detailed_scores TEXT NOT NULL DEFAULT '{}',
  source_id TEXT NOT NULL DEFAULT ''
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_tenders_scraped_at
ON tenders(scraped_at);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_tenders_source_id
ON tenders(source_id)
WHERE source_id != '';
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

// ComputeSourceID derives the dedupe key from the source page and title, so
// the same tender seen on successive polls collapses to one row.
func ComputeSourceID(t domain.Tender) string {
	return util.HashString("url:" + strings.TrimSpace(t.SourceURL) + "|title:" + strings.TrimSpace(t.Title))
}

// InsertTenderIfNew inserts unless a row with the same source id exists.
// Reports whether a new row was added.
func InsertTenderIfNew(ctx context.Context, db *sql.DB, t domain.Tender, score int, justification string, detailed map[string]int) (bool, error) {
	sourceID := ComputeSourceID(t)
	reqB, _ := json.Marshal(t.Requirements)
	scoresB, _ := json.Marshal(detailed)

	_, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO tenders
  (title, description, deadline, budget, location, industry, requirements,
   source_url, scraped_at, score, justification, detailed_scores, source_id)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?);`,
		t.Title, t.Description, t.Deadline, t.Budget, t.Location, t.Industry,
		string(reqB), t.SourceURL, t.ScrapedAt, score, justification, string(scoresB), sourceID,
	)
	if err != nil {
		return false, fmt.Errorf("insert tender: %w", err)
	}

	var changes int
	if err := db.QueryRowContext(ctx, `SELECT changes();`).Scan(&changes); err == nil {
		return changes > 0, nil
	}
	return true, nil
}

func ListTenders(ctx context.Context, db *sql.DB, opts ListTendersOpts) ([]TenderRow, error) {
	sortCol := map[string]string{
		"score":      "score",
		"scraped_at": "scraped_at",
		"title":      "title",
	}[opts.Sort]
	order := "DESC"
	if sortCol == "" {
		sortCol = "score"
	}
	if sortCol == "title" {
		order = "ASC"
	}

	where := ""
	switch opts.Window {
	case "24h":
		where = "WHERE scraped_at >= datetime('now','-24 hours')"
	case "all":
		// no filter
	default:
		where = "WHERE scraped_at >= datetime('now','-7 days')"
	}

	limit := opts.Limit
	if limit <= 0 || limit > 2000 {
		limit = 500
	}

	query := fmt.Sprintf(`
SELECT id, title, description, deadline, budget, location, industry, requirements,
       source_url, scraped_at, score, justification, detailed_scores, source_id
FROM tenders
%s
ORDER BY %s %s
LIMIT ?;`, where, sortCol, order)

	rows, err := db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TenderRow
	for rows.Next() {
		var r TenderRow
		var reqJSON, scoresJSON string
		if err := rows.Scan(
			&r.ID,
			&r.Tender.Title,
			&r.Tender.Description,
			&r.Tender.Deadline,
			&r.Tender.Budget,
			&r.Tender.Location,
			&r.Tender.Industry,
			&reqJSON,
			&r.Tender.SourceURL,
			&r.Tender.ScrapedAt,
			&r.Score,
			&r.Justification,
			&scoresJSON,
			&r.SourceID,
		); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(reqJSON), &r.Tender.Requirements)
		_ = json.Unmarshal([]byte(scoresJSON), &r.Scores)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func CleanupOldTenders(db *sql.DB) (deleted int64, err error) {
	res, err := db.Exec(`
DELETE FROM tenders
WHERE scraped_at < datetime('now', '-3 months');
`)
	if err != nil {
		return 0, fmt.Errorf("cleanup old tenders: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
