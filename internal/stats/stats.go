// Package stats computes derived views over a snapshot of the log
// collection. Everything here is pure: callers load the entries once and
// pass them in together with the selected date.
package stats

import (
	"math"
	"time"

	"liftlog/internal/domain"
)

// Group is the entries of one exercise on one date, in input order.
type Group struct {
	Exercise domain.Exercise   `json:"exercise"`
	Entries  []domain.LogEntry `json:"entries"`
}

// GroupByExercise filters the snapshot to the given date and groups entries
// by exercise in canonical display order. Exercises without entries on that
// date are omitted.
func GroupByExercise(entries []domain.LogEntry, date string) []Group {
	byExercise := make(map[domain.Exercise][]domain.LogEntry)
	for _, e := range entries {
		if e.Date != date {
			continue
		}
		byExercise[e.Exercise] = append(byExercise[e.Exercise], e)
	}

	groups := make([]Group, 0, len(byExercise))
	for _, ex := range domain.AllExercises {
		if es, ok := byExercise[ex]; ok {
			groups = append(groups, Group{Exercise: ex, Entries: es})
		}
	}
	return groups
}

// Volume is the workload proxy: sum of weight×reps. Empty input yields 0.
func Volume(entries []domain.LogEntry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Weight * float64(e.Reps)
	}
	return total
}

// EstimatedOneRepMax estimates the single-rep maximum from a higher-rep set
// using the Epley formula. The result is unrounded; use Round1 for display.
func EstimatedOneRepMax(weight float64, reps int) float64 {
	return weight * (1 + float64(reps)/30)
}

// Round1 rounds to one decimal place for display.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// DayVolume is one point of the rolling daily-volume series.
type DayVolume struct {
	Date   string  `json:"date"`
	Volume float64 `json:"volume"`
}

// DailyVolumeSeries builds the total volume for each of the last windowDays
// calendar days ending at today, oldest first. The series always has exactly
// windowDays points; days without entries stay at 0 and entries outside the
// window are ignored.
func DailyVolumeSeries(entries []domain.LogEntry, today time.Time, windowDays int) []DayVolume {
	series := make([]DayVolume, windowDays)
	index := make(map[string]int, windowDays)
	for i := 0; i < windowDays; i++ {
		date := domain.FormatDate(today.AddDate(0, 0, i-windowDays+1))
		series[i] = DayVolume{Date: date}
		index[date] = i
	}

	for _, e := range entries {
		if i, ok := index[e.Date]; ok {
			series[i].Volume += e.Weight * float64(e.Reps)
		}
	}
	return series
}

// BestWeight returns the maximum weight per exercise across the given
// entries. Every canonical exercise is present in the result; exercises
// without entries map to the 0 sentinel, which personal-record detection
// relies on ("no prior best").
func BestWeight(entries []domain.LogEntry) map[domain.Exercise]float64 {
	best := make(map[domain.Exercise]float64, len(domain.AllExercises))
	for _, ex := range domain.AllExercises {
		best[ex] = 0
	}
	for _, e := range entries {
		if e.Weight > best[e.Exercise] {
			best[e.Exercise] = e.Weight
		}
	}
	return best
}

// PersonalRecords returns, in canonical order, the exercises whose best
// weight on the selected date strictly exceeds the best weight on every
// other date. Ties are not records; a first-ever entry is (the prior best
// is the 0 sentinel).
func PersonalRecords(entries []domain.LogEntry, selectedDate string) []domain.Exercise {
	var onDate, offDate []domain.LogEntry
	for _, e := range entries {
		if e.Date == selectedDate {
			onDate = append(onDate, e)
		} else {
			offDate = append(offDate, e)
		}
	}

	bestOn := BestWeight(onDate)
	bestOff := BestWeight(offDate)

	// Non-nil even when empty so a day without records serializes as [].
	records := make([]domain.Exercise, 0, len(domain.AllExercises))
	for _, ex := range domain.AllExercises {
		if bestOn[ex] > 0 && bestOn[ex] > bestOff[ex] {
			records = append(records, ex)
		}
	}
	return records
}
