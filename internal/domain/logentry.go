package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the storage and display format for log dates.
// Dates use the local calendar; there is no time-of-day component.
const DateLayout = "2006-01-02"

// LogEntry is a single recorded set: one exercise, one weight, one rep count,
// logged against a calendar date. Entries are immutable once created; the only
// mutation is full replacement keyed by ID during an import merge.
type LogEntry struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Exercise  Exercise  `json:"exercise"`
	Weight    float64   `json:"weight"` // kilograms, > 0
	Reps      int       `json:"reps"`   // > 0
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Valid reports whether an already-typed entry satisfies the model invariants.
func (e LogEntry) Valid() bool {
	return e.Date != "" && e.Weight > 0 && e.Reps > 0
}

// FormatDate renders a time as a zero-padded YYYY-MM-DD string in the
// time's own location. No UTC conversion happens here: the log is keyed
// by the user's local calendar day.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Candidate is a loosely typed record as it arrives from an import file,
// a legacy snapshot or a manual submission. Weight and Reps stay untyped
// because JSON sources deliver them as numbers or strings interchangeably.
type Candidate struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Exercise string `json:"exercise"`
	Weight   any    `json:"weight"`
	Reps     any    `json:"reps"`
	Note     string `json:"note"`
}

// ValidationError carries per-field messages for a rejected candidate.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "invalid log entry: " + strings.Join(parts, "; ")
}

// ValidateCandidate is the single entry point for every record reaching
// storage, whether via manual entry, JSON/CSV import or legacy migration.
// It coerces the exercise through NormalizeExercise, parses numeric fields
// and truncates the date to 10 characters to defend against stray time
// components from older snapshots.
func ValidateCandidate(c Candidate) (LogEntry, error) {
	fields := make(map[string]string)

	if c.ID == "" {
		fields["id"] = "identifier is required"
	}

	date := c.Date
	if len(date) > len(DateLayout) {
		date = date[:len(DateLayout)]
	}
	if date == "" {
		fields["date"] = "date is required"
	}

	weight, ok := coerceFloat(c.Weight)
	if !ok || weight <= 0 {
		fields["weight"] = "weight must be a positive number"
	}

	reps, ok := coerceInt(c.Reps)
	if !ok || reps <= 0 {
		fields["reps"] = "reps must be a positive integer"
	}

	if len(fields) > 0 {
		return LogEntry{}, &ValidationError{Fields: fields}
	}

	return LogEntry{
		ID:       c.ID,
		Date:     date,
		Exercise: NormalizeExercise(c.Exercise),
		Weight:   weight,
		Reps:     reps,
		Note:     NormalizeNote(c.Note),
	}, nil
}

// NormalizeNote collapses empty or whitespace-only notes to the absent value.
func NormalizeNote(note string) string {
	return strings.TrimSpace(note)
}

func coerceFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case fmt.Stringer:
		parsed, err := strconv.ParseFloat(n.String(), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	// ParseFloat accepts "NaN" and "Inf" spellings; neither is a weight,
	// and encoding/json refuses to marshal them on export.
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func coerceInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		// JSON numbers land here; accept only whole values.
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	case fmt.Stringer:
		i, err := strconv.Atoi(n.String())
		return i, err == nil
	default:
		return 0, false
	}
}
