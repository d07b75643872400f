package engine

import (
	"sort"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// UnknownExercise is the display name recorded when a session holds sets
// for an exercise id the day definition no longer contains.
const UnknownExercise = "Unknown Exercise"

// FinishSession converts a live session into a permanent HistoryRecord.
// Only completed sets count: they drive the volume total, the
// exercises-completed counter, and the detailed log. Exercises with no
// completed sets leave no trace. The record is returned to the caller for
// appending to the history store; nothing is persisted here.
func FinishSession(session *models.Session, day *models.WorkoutDay, planName string, finishedAt time.Time, newID func() string) models.HistoryRecord {
	if newID == nil {
		newID = uuid.NewString
	}

	duration := int64(finishedAt.Sub(session.StartedAt) / time.Second)
	if duration < 0 {
		duration = 0
	}

	rec := models.HistoryRecord{
		ID:          newID(),
		CompletedAt: finishedAt,
		PlanName:    planName,
		DayName:     day.Name,
		DurationSec: duration,
	}

	for _, exerciseID := range traversalOrder(session, day) {
		sets := session.Sets[exerciseID]

		var done []models.LoggedSet
		for _, set := range sets {
			if !set.Completed {
				continue
			}
			done = append(done, models.LoggedSet{
				Weight:    set.Weight,
				Reps:      set.Reps,
				Completed: true,
			})
			rec.TotalVolume += set.Weight * float64(set.Reps)
		}
		if len(done) == 0 {
			continue
		}

		rec.ExercisesCompleted++
		rec.Exercises = append(rec.Exercises, models.ExerciseLog{
			Name: exerciseName(day, exerciseID),
			Sets: done,
		})
	}

	return rec
}

// IsEmpty reports whether a session has nothing logged: no set completed
// and no reps entered. Finalizing such a session is still valid (it yields
// a zero-volume record), but callers may want to warn first.
func IsEmpty(session *models.Session) bool {
	for _, sets := range session.Sets {
		for _, set := range sets {
			if set.Completed || set.Reps > 0 {
				return false
			}
		}
	}
	return true
}

// traversalOrder yields the session's exercise ids in day order, then any
// ids the day no longer knows about in sorted order. Map iteration alone
// would make record output nondeterministic.
func traversalOrder(session *models.Session, day *models.WorkoutDay) []string {
	order := make([]string, 0, len(session.Sets))
	seen := make(map[string]bool, len(session.Sets))

	for _, ex := range day.Exercises {
		if _, ok := session.Sets[ex.ID]; ok && !seen[ex.ID] {
			order = append(order, ex.ID)
			seen[ex.ID] = true
		}
	}

	var extra []string
	for id := range session.Sets {
		if !seen[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	return append(order, extra...)
}

func exerciseName(day *models.WorkoutDay, exerciseID string) string {
	for _, ex := range day.Exercises {
		if ex.ID == exerciseID {
			return ex.Name
		}
	}
	return UnknownExercise
}
