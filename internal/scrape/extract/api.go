package extract

import (
	"tenderhunt-engine/internal/scrape/types"
)

// Envelope keys under which APIs commonly nest their result list.
var envelopeKeys = []string{"data", "results", "items", "tenders", "opportunities", "notices", "content"}

// APIItems unwraps a decoded JSON body into a list of candidate items. A
// top-level list is taken as-is; a dict is searched for a list under the
// envelope keys; a bare dict becomes a one-element list.
func APIItems(data any) []any {
	switch v := data.(type) {
	case []any:
		return v
	case map[string]any:
		for _, key := range envelopeKeys {
			switch inner := v[key].(type) {
			case []any:
				return inner
			case map[string]any:
				if key == "content" {
					return []any{inner}
				}
			}
		}
		return []any{v}
	default:
		return nil
	}
}

// FromAPIItem normalizes one API item into a canonical raw record. Extras
// like ids and references ride along when the source exposes them.
func FromAPIItem(item map[string]any) (types.RawTender, bool) {
	raw := types.RawTender(item)

	out := types.RawTender{
		"title":        Title(raw),
		"description":  Description(raw),
		"deadline":     Deadline(raw),
		"budget":       Budget(raw),
		"location":     Location(raw),
		"industry":     Industry(raw),
		"requirements": Requirements(raw),
	}

	if v := raw.Str("id"); v != "" {
		out["tender_id"] = v
	}
	if v := raw.Str("reference"); v != "" {
		out["tender_reference"] = v
	}
	if v := raw.Str("url"); v != "" {
		out["tender_url"] = v
	}
	if v := raw.Str("published_date"); v != "" {
		out["published_date"] = v
	}

	if out.Str("title") == "" {
		return nil, false
	}
	return out, true
}

// FromAPIPayload converts a whole decoded JSON body into raw records.
func FromAPIPayload(data any) []types.RawTender {
	var out []types.RawTender
	for _, it := range APIItems(data) {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		if r, ok := FromAPIItem(m); ok {
			out = append(out, r)
		}
	}
	return out
}
