package service_test

import (
	"context"
	"errors"
	"sort"

	"liftlog/internal/domain"
	"liftlog/internal/repository"
)

// fakeLogRepo is an in-memory repository.LogRepository for service tests.
type fakeLogRepo struct {
	entries     map[string][]domain.LogEntry // owner -> entries
	failAll     bool
	failReplace bool
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{entries: make(map[string][]domain.LogEntry)}
}

func (f *fakeLogRepo) LoadAll(_ context.Context, owner string) ([]domain.LogEntry, error) {
	if f.failAll {
		return nil, errors.New("storage unavailable")
	}
	entries := append([]domain.LogEntry(nil), f.entries[owner]...)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (f *fakeLogRepo) Insert(_ context.Context, owner string, entry domain.LogEntry) (domain.LogEntry, error) {
	if f.failAll {
		return domain.LogEntry{}, errors.New("storage unavailable")
	}
	f.entries[owner] = append(f.entries[owner], entry)
	return entry, nil
}

func (f *fakeLogRepo) InsertBatch(ctx context.Context, owner string, entries []domain.LogEntry) error {
	for _, e := range entries {
		if _, err := f.Insert(ctx, owner, e); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeLogRepo) ReplaceBatch(_ context.Context, owner string, entries []domain.LogEntry) error {
	if f.failAll || f.failReplace {
		return errors.New("storage unavailable")
	}
	for _, incoming := range entries {
		replaced := false
		for i, e := range f.entries[owner] {
			if e.ID == incoming.ID {
				f.entries[owner][i] = incoming
				replaced = true
				break
			}
		}
		if !replaced {
			f.entries[owner] = append(f.entries[owner], incoming)
		}
	}
	return nil
}

func (f *fakeLogRepo) Delete(_ context.Context, owner string, id string) error {
	if f.failAll {
		return errors.New("storage unavailable")
	}
	for i, e := range f.entries[owner] {
		if e.ID == id {
			f.entries[owner] = append(f.entries[owner][:i], f.entries[owner][i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}
