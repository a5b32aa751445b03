package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampDecodesAnyValue(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want Timestamp
	}{
		{"rfc3339", `{"_id":"r","lastUpdated":"2024-05-01T10:00:00Z"}`, "2024-05-01T10:00:00Z"},
		{"date only", `{"_id":"r","lastUpdated":"2024-05-01"}`, "2024-05-01"},
		{"free text", `{"_id":"r","lastUpdated":"last spring"}`, "last spring"},
		{"number", `{"_id":"r","lastUpdated":1714557600}`, "1714557600"},
		{"null", `{"_id":"r","lastUpdated":null}`, ""},
		{"absent", `{"_id":"r"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rule ServerRule
			require.NoError(t, json.Unmarshal([]byte(tt.doc), &rule))
			assert.Equal(t, tt.want, rule.LastUpdated)
		})
	}
}

func TestTimestampTime(t *testing.T) {
	at, ok := Timestamp("2024-05-01T10:00:00Z").Time()
	require.True(t, ok)
	assert.True(t, at.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))

	at, ok = Timestamp("2024-05-01").Time()
	require.True(t, ok)
	assert.Equal(t, time.May, at.Month())

	_, ok = Timestamp("last spring").Time()
	assert.False(t, ok)
}
