package models

import (
	"bytes"
	"encoding/json"
	"time"
)

var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// Timestamp is a date the store may hold as a timestamp or as free-form text.
// Decoding never fails on the value; the original text is kept.
type Timestamp string

// UnmarshalJSON accepts strings, numbers and null.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Timestamp(s)
		return nil
	}
	*t = Timestamp(data)
	return nil
}

// Time parses the value as RFC 3339 or a plain date. ok is false for anything else.
func (t Timestamp) Time() (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, string(t)); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
