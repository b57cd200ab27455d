package discover

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidates_Rewrites(t *testing.T) {
	got := candidates("https://ppra.example/website/Tenders/index")
	assert.Contains(t, got, "https://ppra.example/api/tenders")

	got = candidates("https://portal.example/Public/Notice")
	assert.Contains(t, got, "https://portal.example/api/notices")

	got = candidates("https://portal.example/tenders/published-tenders")
	assert.Contains(t, got, "https://portal.example/api/tenders")
	assert.Contains(t, got, "https://portal.example/api/opportunities")
	assert.Contains(t, got, "https://portal.example/api/procurement")
}

func TestAttempt_ProbesRewrittenEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tenders" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"title":"Procurement of survey drones"}]}`))
	}))
	defer srv.Close()

	s := New(resty.New())
	out, err := s.Attempt(context.Background(), srv.URL+"/tenders/published-tenders")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Procurement of survey drones", out[0].Str("title"))
}

func TestAttempt_HTMLCandidateScannedForEmbeddedData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tenders" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body>
<script type="application/ld+json">
{"@type":"Offer","name":"Tender for port dredging works","closingDate":"2025-07-15"}
</script>
</body></html>`))
	}))
	defer srv.Close()

	s := New(resty.New())
	out, err := s.Attempt(context.Background(), srv.URL+"/tenders/published-tenders")
	require.NoError(t, err)
	require.Len(t, out, 1, "non-JSON candidates are scanned for embedded data")
	assert.Equal(t, "Tender for port dredging works", out[0].Str("title"))
	assert.Equal(t, "2025-07-15", out[0].Str("deadline"))
}

func TestAttempt_HTMLCandidateScriptFragments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tenders" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body>
<script>var listing = {"tender": true, "title": "Electrification of rural health posts"};</script>
</body></html>`))
	}))
	defer srv.Close()

	s := New(resty.New())
	out, err := s.Attempt(context.Background(), srv.URL+"/tenders/published-tenders")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Electrification of rural health posts", out[0].Str("title"))
}

func TestAttempt_NoEndpointFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	s := New(resty.New())
	out, err := s.Attempt(context.Background(), srv.URL+"/tenders/published-tenders")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFincaTanzania_DocumentLinks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body>
<a href="/docs/annual-report.pdf">Annual report 2024</a>
<a href="/docs/branch-fitout-tender.pdf">Tender for branch fit-out works</a>
</body></html>`))
	}))
	defer srv.Close()

	s := New(resty.New())
	out, err := s.fincaTanzania(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, out, 1, "only keyword-worded document links are tenders")

	assert.Equal(t, "Tender for branch fit-out works", out[0].Str("title"))
	assert.Equal(t, "/docs/branch-fitout-tender.pdf", out[0].Str("document_url"))
	assert.Equal(t, "Tanzania", out[0].Str("location"))
}

func TestFincaTanzania_ParagraphFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body>
<p>Invitation to tender for the supply of office furniture at our head office.</p>
</body></html>`))
	}))
	defer srv.Close()

	s := New(resty.New())
	out, err := s.fincaTanzania(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Invitation to tender for the supply of office furniture at our head office.", out[0].Str("title"))
}

func TestNestTanzania_TextBlockFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body>
<p>Open tender: construction of district water supply scheme, closing soon.</p>
</body></html>`))
	}))
	defer srv.Close()

	s := New(resty.New())
	out, err := s.nestTanzania(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Tanzania", out[0].Str("location"))
	assert.Contains(t, out[0].Str("title"), "district water supply")
}
