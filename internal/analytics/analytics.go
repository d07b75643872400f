package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// ProgressionPoint is one workout's performance for a single exercise.
type ProgressionPoint struct {
	Date         time.Time `json:"date"`
	MaxWeight    float64   `json:"max_weight"`
	Volume       float64   `json:"volume"`
	EstOneRepMax float64   `json:"est_one_rep_max"`
}

// WeeklyBucket is one 7-day window of activity, anchored to "now" rather
// than calendar week boundaries.
type WeeklyBucket struct {
	Label    string  `json:"label"`
	Workouts int     `json:"workouts"`
	Volume   float64 `json:"volume"`
}

// Summary is the all-time aggregate over the history store.
type Summary struct {
	TotalWorkouts int     `json:"total_workouts"`
	TotalVolume   float64 `json:"total_volume"`
	ActiveDays    int     `json:"active_days"`
}

// EstOneRepMax estimates a one-rep max from a single set using the Epley
// formula: weight * (1 + reps/30).
func EstOneRepMax(weight float64, reps int) float64 {
	return weight * (1 + float64(reps)/30)
}

// Progression builds the per-exercise time series from history, matching
// detail entries by exercise name. Records where the exercise has no
// completed sets are excluded. The series is sorted oldest-first
// regardless of the store's newest-first order.
func Progression(history []models.HistoryRecord, exerciseName string) []ProgressionPoint {
	var series []ProgressionPoint
	for _, rec := range history {
		for _, ex := range rec.Exercises {
			if ex.Name != exerciseName {
				continue
			}
			point := ProgressionPoint{Date: rec.CompletedAt}
			for _, set := range ex.Sets {
				if !set.Completed {
					continue
				}
				point.Volume += set.Weight * float64(set.Reps)
				if set.Weight > point.MaxWeight {
					point.MaxWeight = set.Weight
				}
				if est := EstOneRepMax(set.Weight, set.Reps); est > point.EstOneRepMax {
					point.EstOneRepMax = est
				}
			}
			if point.Volume > 0 {
				series = append(series, point)
			}
		}
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})
	return series
}

// WeeklyActivity rolls history up into 7-day buckets ending at now.
// Bucket k covers whole-day distances [7k, 7k+7) from now; records at or
// beyond the requested week count are dropped. Output is oldest bucket
// first, ending with "this week".
func WeeklyActivity(history []models.HistoryRecord, now time.Time, weeks int) []WeeklyBucket {
	if weeks <= 0 {
		return nil
	}

	buckets := make([]WeeklyBucket, weeks)
	for i := range buckets {
		buckets[i].Label = bucketLabel(weeks - 1 - i)
	}

	for _, rec := range history {
		days := int(now.Sub(rec.CompletedAt) / (24 * time.Hour))
		if days < 0 {
			continue
		}
		idx := days / 7
		if idx >= weeks {
			continue
		}
		b := &buckets[weeks-1-idx]
		b.Workouts++
		b.Volume += rec.TotalVolume
	}

	return buckets
}

func bucketLabel(weeksAgo int) string {
	if weeksAgo == 0 {
		return "this week"
	}
	return fmt.Sprintf("%dw ago", weeksAgo)
}

// Summarize computes the all-time totals: workout count, volume, and the
// number of distinct local calendar days with at least one workout.
func Summarize(history []models.HistoryRecord) Summary {
	s := Summary{TotalWorkouts: len(history)}
	days := make(map[string]bool, len(history))
	for _, rec := range history {
		s.TotalVolume += rec.TotalVolume
		days[rec.CompletedAt.Local().Format(time.DateOnly)] = true
	}
	s.ActiveDays = len(days)
	return s
}
