package service

import (
	"context"
	"errors"
	"time"

	"liftlog/internal/domain"
	"liftlog/internal/repository"
	"liftlog/internal/stats"
)

// --- Error Definitions ---
var (
	ErrEntryNotFound = errors.New("log entry not found")
)

// SetStats is one logged set plus its estimated one-rep max.
type SetStats struct {
	Entry     domain.LogEntry `json:"entry"`
	OneRepMax float64         `json:"oneRepMax"` // rounded to one decimal
}

// GroupStats is one exercise's sets and volume on the selected date.
type GroupStats struct {
	Exercise domain.Exercise `json:"exercise"`
	Sets     []SetStats      `json:"sets"`
	Volume   float64         `json:"volume"`
}

/// DayStats is everything the day view needs: groups in canonical exercise
// order and the personal records achieved on that date.
type DayStats struct {
	Date            string            `json:"date"`
	Groups          []GroupStats      `json:"groups"`
	PersonalRecords []domain.Exercise `json:"personalRecords"`
}

type LogService interface {
	ListEntries(ctx context.Context, owner string) ([]domain.LogEntry, error)
	AddEntry(ctx context.Context, owner string, candidate domain.Candidate) (domain.LogEntry, error)
	DeleteEntry(ctx context.Context, owner, id string) error
	DayStats(ctx context.Context, owner, date string) (*DayStats, error)
	VolumeSeries(ctx context.Context, owner string, windowDays int) ([]stats.DayVolume, error)
}

// logService implements LogService on top of the persistence adapter.
// Derived views are always recomputed from a fresh snapshot; nothing is
// cached, so display state deterministically follows the stored collection.
type logService struct {
	logRepo repository.LogRepository
	idGen   domain.IDGenerator
	now     func() time.Time
}

// NewLogService creates a new instance of logService.
func NewLogService(logRepo repository.LogRepository, idGen domain.IDGenerator) LogService {
	return &logService{
		logRepo: logRepo,
		idGen:   idGen,
		now:     time.Now,
	}
}

func (s *logService) ListEntries(ctx context.Context, owner string) ([]domain.LogEntry, error) {
	return s.logRepo.LoadAll(ctx, owner)
}

// AddEntry validates a manual submission and stores it. The identifier is
// generated here, never caller supplied; a *domain.ValidationError carries
// per-field messages back to the form.
func (s *logService) AddEntry(ctx context.Context, owner string, candidate domain.Candidate) (domain.LogEntry, error) {
	candidate.ID = s.idGen.NewID()

	entry, err := domain.ValidateCandidate(candidate)
	if err != nil {
		return domain.LogEntry{}, err
	}
	entry.CreatedAt = s.now().UTC()

	return s.logRepo.Insert(ctx, owner, entry)
}

func (s *logService) DeleteEntry(ctx context.Context, owner, id string) error {
	err := s.logRepo.Delete(ctx, owner, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrEntryNotFound
	}
	return err
}

// DayStats loads a snapshot and computes the selected date's view.
func (s *logService) DayStats(ctx context.Context, owner, date string) (*DayStats, error) {
	entries, err := s.logRepo.LoadAll(ctx, owner)
	if err != nil {
		return nil, err
	}

	groups := stats.GroupByExercise(entries, date)
	result := &DayStats{
		Date:            date,
		Groups:          make([]GroupStats, 0, len(groups)),
		PersonalRecords: stats.PersonalRecords(entries, date),
	}
	for _, g := range groups {
		sets := make([]SetStats, 0, len(g.Entries))
		for _, e := range g.Entries {
			sets = append(sets, SetStats{
				Entry:     e,
				OneRepMax: stats.Round1(stats.EstimatedOneRepMax(e.Weight, e.Reps)),
			})
		}
		result.Groups = append(result.Groups, GroupStats{
			Exercise: g.Exercise,
			Sets:     sets,
			Volume:   stats.Volume(g.Entries),
		})
	}
	return result, nil
}

// VolumeSeries returns the rolling daily-volume series ending today.
func (s *logService) VolumeSeries(ctx context.Context, owner string, windowDays int) ([]stats.DayVolume, error) {
	if windowDays <= 0 {
		windowDays = 30
	}
	entries, err := s.logRepo.LoadAll(ctx, owner)
	if err != nil {
		return nil, err
	}
	return stats.DailyVolumeSeries(entries, s.now(), windowDays), nil
}
