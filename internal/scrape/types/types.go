package types

import (
	"context"
	"fmt"
	"strings"
)

// RawTender is a loosely-typed candidate record as a strategy produced it,
// before post-processing. Sources disagree wildly on field names, so raw
// records stay a string-keyed map until the field normalizers have run.
type RawTender map[string]any

// Str returns the value under key rendered as a trimmed string, or "".
func (r RawTender) Str(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	default:
		return strings.TrimSpace(fmt.Sprint(s))
	}
}

// StrSlice returns the value under key as a string slice. A native list is
// converted element-wise; anything else yields nil.
func (r RawTender) StrSlice(key string) []string {
	v, ok := r[key]
	if !ok || v == nil {
		return nil
	}
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			if e == nil {
				continue
			}
			s := strings.TrimSpace(fmt.Sprint(e))
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Strategy is one self-contained extraction technique. Implementations catch
// their own transient errors where possible; a returned error is logged by
// the orchestrator and the cascade moves on, it never aborts a scrape.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, url string) ([]RawTender, error)
}

// Status mirrors the last scrape run for the HTTP API.
type Status struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	LastAdded int    `json:"last_added"`
	Running   bool   `json:"running"`
}
