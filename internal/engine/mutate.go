package engine

import (
	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// updateSet applies fn to the addressed set after bounds-checking. All
// field mutations go through here so out-of-range handling is uniform.
func updateSet(s *models.Session, exerciseID string, setIndex int, fn func(*models.SetLog)) error {
	sets, ok := s.Sets[exerciseID]
	if !ok || setIndex < 0 || setIndex >= len(sets) {
		return &OutOfRangeError{ExerciseID: exerciseID, SetIndex: setIndex}
	}
	fn(&sets[setIndex])
	return nil
}

// SetReps replaces the rep count of one set.
func SetReps(s *models.Session, exerciseID string, setIndex, reps int) error {
	return updateSet(s, exerciseID, setIndex, func(set *models.SetLog) {
		set.Reps = reps
	})
}

// SetWeight replaces the weight of one set.
func SetWeight(s *models.Session, exerciseID string, setIndex int, weight float64) error {
	return updateSet(s, exerciseID, setIndex, func(set *models.SetLog) {
		set.Weight = weight
	})
}

// SetCompleted replaces the completed flag of one set.
func SetCompleted(s *models.Session, exerciseID string, setIndex int, completed bool) error {
	return updateSet(s, exerciseID, setIndex, func(set *models.SetLog) {
		set.Completed = completed
	})
}

// ToggleCompleted flips the completed flag of one set.
func ToggleCompleted(s *models.Session, exerciseID string, setIndex int) error {
	return updateSet(s, exerciseID, setIndex, func(set *models.SetLog) {
		set.Completed = !set.Completed
	})
}

// AddSet appends a new set to an exercise, copying weight and reps from
// the current last set (zeroes if the list is empty).
func AddSet(s *models.Session, exerciseID string, newID func() string) error {
	if newID == nil {
		newID = uuid.NewString
	}
	sets, ok := s.Sets[exerciseID]
	if !ok {
		return &OutOfRangeError{ExerciseID: exerciseID, SetIndex: len(sets)}
	}

	next := models.SetLog{ID: newID()}
	if n := len(sets); n > 0 {
		next.Weight = sets[n-1].Weight
		next.Reps = sets[n-1].Reps
	}
	s.Sets[exerciseID] = append(sets, next)
	return nil
}

// RemoveSet drops the last set of an exercise. An exercise must keep at
// least one set slot while the session is live, so removing the only set
// is a no-op.
func RemoveSet(s *models.Session, exerciseID string) error {
	sets, ok := s.Sets[exerciseID]
	if !ok {
		return &OutOfRangeError{ExerciseID: exerciseID, SetIndex: 0}
	}
	if len(sets) <= 1 {
		return nil
	}
	s.Sets[exerciseID] = sets[:len(sets)-1]
	return nil
}
