package repository

// Helpers for JSON-typed columns. The store keeps a handful of document
// fields (tool_subscriptions, niches, attachments) as JSON text; these
// wrappers keep the scan/exec sites short and treat NULL and empty string
// as the zero value.

import "encoding/json"

// encodeJSON marshals v for storage. A nil map/slice is stored as its JSON
// zero value rather than SQL NULL so reads never have to special-case it.
func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeJSON unmarshals a JSON column into out, tolerating NULL/empty.
func decodeJSON(raw []byte, out any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}
