package serial_test

import (
	"testing"

	"liftlog/internal/domain"
	"liftlog/internal/serial"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRoundTrip(t *testing.T) {
	entries := []domain.LogEntry{
		{ID: "a1", Date: "2024-01-02", Exercise: domain.ExerciseBenchPress, Weight: 80, Reps: 5, Note: "paused"},
		{ID: "a2", Date: "2024-01-01", Exercise: domain.ExerciseSquat, Weight: 100, Reps: 3},
	}

	data, err := serial.EncodeJSON(entries)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": 1`)

	decoded, dropped, err := serial.DecodeJSON(data)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	require.Len(t, decoded, len(entries))
	for i, got := range decoded {
		// Identifiers are preserved on JSON import.
		assert.Equal(t, entries[i].ID, got.ID)
		assert.Equal(t, entries[i].Date, got.Date)
		assert.Equal(t, entries[i].Exercise, got.Exercise)
		assert.Equal(t, entries[i].Weight, got.Weight)
		assert.Equal(t, entries[i].Reps, got.Reps)
		assert.Equal(t, entries[i].Note, got.Note)
	}
}

func TestDecodeJSON_BareArray(t *testing.T) {
	payload := `[{"id":"x","date":"2024-01-01","exercise":"デッドリフト","weight":140,"reps":1}]`

	decoded, dropped, err := serial.DecodeJSON([]byte(payload))
	require.NoError(t, err)
	assert.Zero(t, dropped)
	require.Len(t, decoded, 1)
	assert.Equal(t, domain.ExerciseDeadlift, decoded[0].Exercise)
}

func TestDecodeJSON_InvalidRecordsDropped(t *testing.T) {
	payload := `{"version":1,"logs":[
		{"id":"ok","date":"2024-01-01","exercise":"スクワット","weight":"100","reps":"3"},
		{"id":"bad1","date":"","exercise":"スクワット","weight":100,"reps":3},
		{"id":"bad2","date":"2024-01-01","exercise":"スクワット","weight":0,"reps":3},
		{"date":"2024-01-01","exercise":"スクワット","weight":100,"reps":3}
	]}`

	decoded, dropped, err := serial.DecodeJSON([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, 3, dropped)
	require.Len(t, decoded, 1)
	assert.Equal(t, "ok", decoded[0].ID)
	assert.Equal(t, 100.0, decoded[0].Weight)
	assert.Equal(t, 3, decoded[0].Reps)
}

func TestDecodeJSON_EnvelopeWithoutLogsIsEmpty(t *testing.T) {
	// A versioned envelope whose logs are null or absent is an empty
	// collection, not a malformed payload.
	for _, payload := range []string{`{"version":1,"logs":null}`, `{"version":1}`} {
		decoded, dropped, err := serial.DecodeJSON([]byte(payload))
		require.NoError(t, err, payload)
		assert.Zero(t, dropped)
		assert.Empty(t, decoded)
	}
}

func TestDecodeJSON_Unparseable(t *testing.T) {
	_, _, err := serial.DecodeJSON([]byte("not json at all"))
	require.ErrorIs(t, err, serial.ErrBadPayload)
}

func TestEncodeJSON_EmptyCollection(t *testing.T) {
	data, err := serial.EncodeJSON(nil)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"logs": []`)
}
