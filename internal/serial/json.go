// Package serial handles the JSON and CSV wire formats for export, import
// and the legacy local snapshot. Decoding is tolerant: individual records
// failing validation are dropped, only an unparseable payload is an error.
package serial

import (
	"encoding/json"
	"errors"

	"liftlog/internal/domain"
)

// SchemaVersion tags exported JSON payloads so future format generations
// can be told apart on import.
const SchemaVersion = 1

// ErrBadPayload reports a payload that could not be parsed at all, as
// opposed to one with some invalid records.
var ErrBadPayload = errors.New("payload is not valid JSON or CSV")

// Envelope is the versioned export wrapper.
type Envelope struct {
	Version int               `json:"version"`
	Logs    []domain.LogEntry `json:"logs"`
}

// EncodeJSON renders the collection as a pretty-printed versioned envelope.
func EncodeJSON(entries []domain.LogEntry) ([]byte, error) {
	if entries == nil {
		entries = []domain.LogEntry{}
	}
	return json.MarshalIndent(Envelope{Version: SchemaVersion, Logs: entries}, "", "  ")
}

// DecodeJSON parses an import payload, accepting either the versioned
// envelope or a bare array (the oldest snapshot generation was unversioned).
// Each element runs through domain validation; invalid elements are dropped
// and counted rather than failing the batch.
func DecodeJSON(data []byte) (accepted []domain.LogEntry, dropped int, err error) {
	var envelope struct {
		Version *int               `json:"version"`
		Logs    []domain.Candidate `json:"logs"`
	}
	var candidates []domain.Candidate

	// A versioned object with null or missing logs is an empty export,
	// not a malformed payload.
	if err := json.Unmarshal(data, &envelope); err == nil && (envelope.Version != nil || envelope.Logs != nil) {
		candidates = envelope.Logs
	} else if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, 0, ErrBadPayload
	}

	accepted = make([]domain.LogEntry, 0, len(candidates))
	for _, c := range candidates {
		entry, err := domain.ValidateCandidate(c)
		if err != nil {
			dropped++
			continue
		}
		accepted = append(accepted, entry)
	}
	return accepted, dropped, nil
}
