package email

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenderhunt-engine/internal/config"
)

func TestSend_ViaResend(t *testing.T) {
	var got map[string]any
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/emails", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"re_123"}`))
	}))
	defer srv.Close()

	s := NewSender(config.Email{
		From:          "alerts@acme.example",
		Recipients:    []string{"ceo@acme.example"},
		CC:            []string{"bids@acme.example"},
		ResendBaseURL: srv.URL,
	}, "rk_test", "")

	results := s.Send("New Tender Opportunity: Road works (score 72)", "body text", "# Proposal")
	require.Len(t, results, 1)
	assert.True(t, results[0].OK)
	assert.Equal(t, "ceo@acme.example", results[0].Recipient)
	assert.Contains(t, results[0].Detail, "re_123")

	assert.Equal(t, "Bearer rk_test", auth)
	assert.Equal(t, "alerts@acme.example", got["from"])
	assert.Equal(t, []any{"ceo@acme.example"}, got["to"])
	assert.Equal(t, []any{"bids@acme.example"}, got["cc"])
	assert.Equal(t, "New Tender Opportunity: Road works (score 72)", got["subject"])
	assert.Contains(t, got["html"], "Generated Proposal")
	assert.Contains(t, got["text"], "--- Generated Proposal ---")
}

func TestSend_ClientErrorNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"message":"invalid from"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	s := NewSender(config.Email{
		From:          "bad",
		Recipients:    []string{"ceo@acme.example"},
		ResendBaseURL: srv.URL,
	}, "rk_test", "")

	results := s.Send("subject", "body", "")
	require.Len(t, results, 1)
	assert.False(t, results[0].OK)
	assert.Equal(t, 1, calls, "4xx responses are terminal")
	// No SMTP host configured, so the fallback fails too.
	assert.Contains(t, results[0].Detail, "smtp host not configured")
}

func TestSend_RecipientFailureDoesNotAbortOthers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			To []string `json:"to"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Len(t, payload.To, 1)
		if strings.HasPrefix(payload.To[0], "broken@") {
			http.Error(w, `{"message":"rejected"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"re_ok"}`))
	}))
	defer srv.Close()

	s := NewSender(config.Email{
		From:          "alerts@acme.example",
		Recipients:    []string{"broken@acme.example", "ceo@acme.example"},
		ResendBaseURL: srv.URL,
	}, "rk_test", "")

	results := s.Send("subject", "body", "")
	require.Len(t, results, 2)
	assert.False(t, results[0].OK)
	assert.True(t, results[1].OK)
}

func TestSend_NoChannelConfigured(t *testing.T) {
	s := NewSender(config.Email{Recipients: []string{"ceo@acme.example"}}, "", "")

	results := s.Send("subject", "body", "")
	require.Len(t, results, 1)
	assert.False(t, results[0].OK)
	assert.Contains(t, results[0].Detail, "smtp host not configured")
}

func TestTextBody(t *testing.T) {
	assert.Equal(t, "body", textBody("body", ""))
	assert.Equal(t, "body\n\n--- Generated Proposal ---\n\nprop", textBody("body", "prop"))
}
