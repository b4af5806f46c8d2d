// Package sqlite backs the local-only variant: a single SQLite file, no
// authentication, every row owned by the fixed local owner key.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"liftlog/internal/domain"
	"liftlog/internal/repository"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS log_entries (
    owner      TEXT NOT NULL,
    entry_id   TEXT NOT NULL,
    date       TEXT NOT NULL,     -- YYYY-MM-DD
    exercise   TEXT NOT NULL,
    weight     REAL NOT NULL,
    reps       INTEGER NOT NULL,
    note       TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL,
    PRIMARY KEY (owner, entry_id)
);
CREATE INDEX IF NOT EXISTS idx_log_entries_owner_date ON log_entries (owner, date DESC);
`

// sqliteLogRepository implements repository.LogRepository on a local file.
type sqliteLogRepository struct {
	db *sql.DB
}

// Open opens (or creates) the database file and ensures the schema exists.
func Open(path string) (repository.LogRepository, *sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create schema: %w", err)
	}
	return &sqliteLogRepository{db: db}, db, nil
}

func (r *sqliteLogRepository) LoadAll(ctx context.Context, owner string) ([]domain.LogEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT entry_id, date, exercise, weight, reps, note, created_at
		 FROM log_entries WHERE owner = ?
		 ORDER BY date DESC, created_at DESC`, owner)
	if err != nil {
		return nil, fmt.Errorf("load log entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LogEntry
	for rows.Next() {
		var (
			e        domain.LogEntry
			exercise string
		)
		if err := rows.Scan(&e.ID, &e.Date, &exercise, &e.Weight, &e.Reps, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		e.Exercise = domain.NormalizeExercise(exercise)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.LogEntry{}
	}
	return entries, nil
}

func (r *sqliteLogRepository) Insert(ctx context.Context, owner string, entry domain.LogEntry) (domain.LogEntry, error) {
	if owner == "" || entry.ID == "" {
		return domain.LogEntry{}, errors.New("log entry requires owner and id")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO log_entries (owner, entry_id, date, exercise, weight, reps, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		owner, entry.ID, entry.Date, string(entry.Exercise), entry.Weight, entry.Reps, entry.Note, entry.CreatedAt)
	if err != nil {
		return domain.LogEntry{}, fmt.Errorf("insert log entry: %w", err)
	}
	return entry, nil
}

func (r *sqliteLogRepository) InsertBatch(ctx context.Context, owner string, entries []domain.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO log_entries (owner, entry_id, date, exercise, weight, reps, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, entry := range entries {
		createdAt := entry.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		if _, err := stmt.ExecContext(ctx,
			owner, entry.ID, entry.Date, string(entry.Exercise), entry.Weight, entry.Reps, entry.Note, createdAt); err != nil {
			return fmt.Errorf("insert log entry %s: %w", entry.ID, err)
		}
	}
	return tx.Commit()
}

// ReplaceBatch upserts the entries inside one transaction; a conflicting
// entry_id overwrites the stored row. A failure rolls everything back.
func (r *sqliteLogRepository) ReplaceBatch(ctx context.Context, owner string, entries []domain.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch replace: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO log_entries (owner, entry_id, date, exercise, weight, reps, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, entry := range entries {
		createdAt := entry.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		if _, err := stmt.ExecContext(ctx,
			owner, entry.ID, entry.Date, string(entry.Exercise), entry.Weight, entry.Reps, entry.Note, createdAt); err != nil {
			return fmt.Errorf("replace log entry %s: %w", entry.ID, err)
		}
	}
	return tx.Commit()
}

func (r *sqliteLogRepository) Delete(ctx context.Context, owner string, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM log_entries WHERE owner = ? AND entry_id = ?`, owner, id)
	if err != nil {
		return fmt.Errorf("delete log entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
