package engine

import (
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// StartSession builds a fresh live session for a workout day, pre-filling
// each exercise's sets with the most recent weight found in history.
// history must be ordered newest-first. The history slice is not mutated.
func StartSession(planID string, day *models.WorkoutDay, history []models.HistoryRecord, startedAt time.Time, newID func() string) *models.Session {
	if newID == nil {
		newID = uuid.NewString
	}

	session := &models.Session{
		ID:        newID(),
		PlanID:    planID,
		DayID:     day.ID,
		StartedAt: startedAt,
		Sets:      make(map[string][]models.SetLog, len(day.Exercises)),
	}

	for _, ex := range day.Exercises {
		weight := lastWeightFor(history, ex.Name)
		sets := make([]models.SetLog, 0, ex.TargetSets)
		for range ex.TargetSets {
			sets = append(sets, models.SetLog{
				ID:     newID(),
				Weight: weight,
			})
		}
		session.Sets[ex.ID] = sets
	}

	return session
}

// lastWeightFor finds the carry-forward weight for an exercise: in the
// most recent record that logged it, the weight of the last completed set,
// falling back to the literal last set, falling back to zero. Matching is
// by exercise name, so a renamed exercise starts over at zero.
func lastWeightFor(history []models.HistoryRecord, name string) float64 {
	for _, rec := range history {
		for _, ex := range rec.Exercises {
			if ex.Name != name {
				continue
			}
			for i := len(ex.Sets) - 1; i >= 0; i-- {
				if ex.Sets[i].Completed {
					return ex.Sets[i].Weight
				}
			}
			if n := len(ex.Sets); n > 0 {
				return ex.Sets[n-1].Weight
			}
			return 0
		}
	}
	return 0
}
