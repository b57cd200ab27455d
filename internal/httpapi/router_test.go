package httpapi

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenderhunt-engine/internal/config"
	"tenderhunt-engine/internal/domain"
	"tenderhunt-engine/internal/email"
	"tenderhunt-engine/internal/events"
	"tenderhunt-engine/internal/scrape/types"
	"tenderhunt-engine/internal/store"
)

type testEnv struct {
	srv *httptest.Server
	db  *store.DB
	hub *events.Hub

	cfgVal       *atomic.Value
	scrapeStatus *atomic.Value

	pollDone chan struct{}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	db, err := store.Open(filepath.Join(dir, "engine.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))

	userCfgPath := filepath.Join(dir, "config.yml")
	require.NoError(t, config.SaveAtomic(userCfgPath, validConfig()))

	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		return cfg, config.Validate(cfg)
	}

	env := &testEnv{
		db:           db,
		hub:          events.NewHub(),
		cfgVal:       &atomic.Value{},
		scrapeStatus: &atomic.Value{},
		pollDone:     make(chan struct{}, 1),
	}
	env.cfgVal.Store(validConfig())
	env.scrapeStatus.Store(types.Status{})

	mux := NewMux(Deps{
		DB:           db.Pool,
		Hub:          env.hub,
		CfgVal:       env.cfgVal,
		ScrapeStatus: env.scrapeStatus,
		UserCfgPath:  userCfgPath,
		LoadCfg:      loadCfg,
		RunPollOnce: func(db *sql.DB, cfg config.Config, sender *email.Sender, onNewTender func(store.TenderRow)) (int, error) {
			defer func() { env.pollDone <- struct{}{} }()
			onNewTender(store.TenderRow{ID: 1, Tender: domain.Tender{Title: "Stubbed tender"}})
			return 3, nil
		},
	})

	env.srv = httptest.NewServer(mux)
	t.Cleanup(env.srv.Close)
	return env
}

func validConfig() config.Config {
	var cfg config.Config
	cfg.App.Port = 38472
	cfg.Scraping.TimeoutSeconds = 5
	cfg.Scraping.MaxRetries = 1
	cfg.Scraping.RequestsPerMinute = 60
	cfg.Polling.IntervalSeconds = 3600
	cfg.Scoring.NotifyMinScore = 50
	cfg.Sites = []config.Site{{Name: "PPRA", URL: "https://ppra.example/tenders"}}
	return cfg
}

func insertTender(t *testing.T, env *testEnv, title string, score int) {
	t.Helper()
	added, err := store.InsertTenderIfNew(context.Background(), env.db.Pool, domain.Tender{
		Title:     title,
		SourceURL: "https://ppra.example/tenders",
		ScrapedAt: time.Now().UTC().Format(time.RFC3339),
	}, score, "", nil)
	require.NoError(t, err)
	require.True(t, added)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	res, err := http.Get(env.srv.URL + "/health")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, 200, res.StatusCode)
}

func TestListTenders(t *testing.T) {
	env := newTestEnv(t)
	insertTender(t, env, "Road rehabilitation works", 70)
	insertTender(t, env, "ICT equipment supply", 55)

	res, err := http.Get(env.srv.URL + "/tenders?window=all&sort=score")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, 200, res.StatusCode)

	var rows []store.TenderRow
	require.NoError(t, json.NewDecoder(res.Body).Decode(&rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Road rehabilitation works", rows[0].Tender.Title)
}

func TestDeleteTender(t *testing.T) {
	env := newTestEnv(t)
	insertTender(t, env, "Tender to be removed soon", 40)

	sub := env.hub.Subscribe()
	defer env.hub.Unsubscribe(sub)

	req, _ := http.NewRequest(http.MethodDelete, env.srv.URL+"/tenders/1", nil)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, 200, res.StatusCode)

	rows, err := store.ListTenders(context.Background(), env.db.Pool, store.ListTendersOpts{Window: "all"})
	require.NoError(t, err)
	assert.Empty(t, rows)

	select {
	case raw := <-sub:
		var evt events.Event
		require.NoError(t, json.Unmarshal([]byte(raw), &evt))
		assert.Equal(t, "tender_deleted", evt.Type)
	case <-time.After(time.Second):
		t.Fatal("no tender_deleted event published")
	}
}

func TestDeleteTender_BadID(t *testing.T) {
	env := newTestEnv(t)
	req, _ := http.NewRequest(http.MethodDelete, env.srv.URL+"/tenders/abc", nil)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, 400, res.StatusCode)
}

func TestPutConfig_RejectsUnknownFields(t *testing.T) {
	env := newTestEnv(t)
	req, _ := http.NewRequest(http.MethodPut, env.srv.URL+"/config",
		bytes.NewBufferString(`{"NotAField": true}`))
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, 400, res.StatusCode)
}

func TestPutConfig_RejectsInvalidValues(t *testing.T) {
	env := newTestEnv(t)
	bad := validConfig()
	bad.Scoring.NotifyMinScore = 400
	b, _ := json.Marshal(bad)

	req, _ := http.NewRequest(http.MethodPut, env.srv.URL+"/config", bytes.NewBuffer(b))
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, 400, res.StatusCode)
}

func TestPutConfig_SavesAndReloads(t *testing.T) {
	env := newTestEnv(t)
	next := validConfig()
	next.Scoring.NotifyMinScore = 80
	b, _ := json.Marshal(next)

	req, _ := http.NewRequest(http.MethodPut, env.srv.URL+"/config", bytes.NewBuffer(b))
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, 200, res.StatusCode)

	cur := env.cfgVal.Load().(config.Config)
	assert.Equal(t, 80, cur.Scoring.NotifyMinScore)
}

func TestScrapeRun_UpdatesStatusAndPublishes(t *testing.T) {
	env := newTestEnv(t)

	sub := env.hub.Subscribe()
	defer env.hub.Unsubscribe(sub)

	res, err := http.Post(env.srv.URL+"/scrape/run", "application/json", nil)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, 200, res.StatusCode)

	select {
	case <-env.pollDone:
	case <-time.After(2 * time.Second):
		t.Fatal("poll stub never ran")
	}

	require.Eventually(t, func() bool {
		st := env.scrapeStatus.Load().(types.Status)
		return !st.Running && st.LastAdded == 3
	}, 2*time.Second, 10*time.Millisecond)

	select {
	case raw := <-sub:
		var evt events.Event
		require.NoError(t, json.Unmarshal([]byte(raw), &evt))
		assert.Equal(t, "tender_created", evt.Type)
	case <-time.After(time.Second):
		t.Fatal("no tender_created event published")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)
	res, err := http.Post(env.srv.URL+"/tenders", "application/json", nil)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}
