package serial

import (
	"fmt"
	"strconv"
	"strings"

	"liftlog/internal/domain"
)

// CSVColumns is the fixed export column order. Import matches header names
// case-sensitively, so files survive column reordering but not renaming.
var CSVColumns = []string{"date", "exercise", "weight", "reps", "note"}

// EncodeCSV renders the collection with one header row and RFC-4180-style
// quoting: fields containing a comma, double quote or newline are wrapped in
// double quotes with inner quotes doubled. An absent note is an empty field.
func EncodeCSV(entries []domain.LogEntry) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(CSVColumns, ","))
	b.WriteByte('\n')

	for _, e := range entries {
		row := []string{
			e.Date,
			string(e.Exercise),
			strconv.FormatFloat(e.Weight, 'f', -1, 64),
			strconv.Itoa(e.Reps),
			e.Note,
		}
		for i, field := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(escapeCSVField(field))
		}
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func escapeCSVField(field string) string {
	if !strings.ContainsAny(field, ",\"\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// ParseCSV splits raw CSV text into rows of fields. It is a small state
// machine rather than a split on commas: a double quote toggles quoted mode,
// a doubled quote inside a quoted field yields a literal quote, and newlines
// terminate rows only outside quotes. CRLF line endings are accepted.
func ParseCSV(text string) [][]string {
	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
	)

	runes := []rune(text)
	flushField := func() {
		row = append(row, field.String())
		field.Reset()
	}
	flushRow := func() {
		flushField()
		rows = append(rows, row)
		row = nil
	}

	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				field.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			flushField()
		case ch == '\n' && !inQuotes:
			flushRow()
		case ch == '\r' && !inQuotes:
			// Swallowed; the matching \n terminates the row.
		default:
			field.WriteRune(ch)
		}
	}

	// A final row without a trailing newline still counts.
	if field.Len() > 0 || len(row) > 0 {
		flushRow()
	}
	return rows
}

// CSVRowsToLogs converts parsed rows into validated log entries. The first
// row must be the header and is used to locate each column. Every data row
// gets a fresh date-exercise-suffix identifier (unique enough within one
// import batch); rows failing validation are dropped and counted.
func CSVRowsToLogs(rows [][]string, gen domain.IDGenerator) (accepted []domain.LogEntry, dropped int, err error) {
	if len(rows) == 0 {
		return nil, 0, ErrBadPayload
	}

	colIndex := make(map[string]int, len(CSVColumns))
	for i, name := range rows[0] {
		colIndex[name] = i
	}
	for _, name := range CSVColumns {
		if _, ok := colIndex[name]; !ok && name != "note" {
			return nil, 0, fmt.Errorf("%w: missing column %q", ErrBadPayload, name)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := colIndex[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	for _, row := range rows[1:] {
		date := cell(row, "date")
		exercise := cell(row, "exercise")
		candidate := domain.Candidate{
			ID:       fmt.Sprintf("%s-%s-%s", date, exercise, idSuffix(gen)),
			Date:     date,
			Exercise: exercise,
			Weight:   cell(row, "weight"),
			Reps:     cell(row, "reps"),
			Note:     cell(row, "note"),
		}
		entry, err := domain.ValidateCandidate(candidate)
		if err != nil {
			dropped++
			continue
		}
		accepted = append(accepted, entry)
	}
	return accepted, dropped, nil
}

func idSuffix(gen domain.IDGenerator) string {
	id := gen.NewID()
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
