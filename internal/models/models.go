package models

import "time"

// PlanSource records how a training plan came to exist.
type PlanSource string

const (
	PlanSourceAuthored PlanSource = "authored"
	PlanSourceAI       PlanSource = "ai"
)

// Exercise is one movement within a workout day. Immutable once its plan
// is published.
type Exercise struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TargetSets int    `json:"target_sets"`
	TargetReps string `json:"target_reps"` // free-form range, e.g. "8-12"
	Notes      string `json:"notes,omitempty"`
}

// WorkoutDay is an ordered list of exercises. The order is meaningful:
// it drives both display and default traversal.
type WorkoutDay struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Exercises []Exercise `json:"exercises"`
}

// TrainingPlan is a static training program. Immutable after creation
// except for whole-plan deletion.
type TrainingPlan struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Days        []WorkoutDay `json:"days"`
	Source      PlanSource   `json:"source"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Day returns the workout day with the given id, or nil.
func (p *TrainingPlan) Day(dayID string) *WorkoutDay {
	for i := range p.Days {
		if p.Days[i].ID == dayID {
			return &p.Days[i]
		}
	}
	return nil
}

// SetLog is one logged set within a live session. Mutable only while the
// owning session is live.
type SetLog struct {
	ID        string  `json:"id"`
	Reps      int     `json:"reps"`
	Weight    float64 `json:"weight"`
	Completed bool    `json:"completed"`
}

// Session is the single live, in-progress workout. It is never persisted
// mid-flight: cancel discards it, finish converts it to a HistoryRecord.
type Session struct {
	ID        string              `json:"id"`
	PlanID    string              `json:"plan_id"`
	DayID     string              `json:"day_id"`
	StartedAt time.Time           `json:"started_at"`
	Sets      map[string][]SetLog `json:"sets"` // exercise id -> ordered sets
}

// LoggedSet is the completed-set triple captured into history.
type LoggedSet struct {
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
	Completed bool    `json:"completed"`
}

// ExerciseLog is the per-exercise detail of a history record: the display
// name plus the sets that were actually completed.
type ExerciseLog struct {
	Name string      `json:"name"`
	Sets []LoggedSet `json:"sets"`
}

// HistoryRecord is an immutable summary of one finished session. Plan and
// day names are captured by value so the record stays interpretable after
// the originating plan is edited or deleted.
type HistoryRecord struct {
	ID                 string        `json:"id"`
	CompletedAt        time.Time     `json:"completed_at"`
	PlanName           string        `json:"plan_name"`
	DayName            string        `json:"day_name"`
	DurationSec        int64         `json:"duration_sec"`
	TotalVolume        float64       `json:"total_volume"`
	ExercisesCompleted int           `json:"exercises_completed"`
	Exercises          []ExerciseLog `json:"exercises,omitempty"`
}
