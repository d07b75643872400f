package engine

import (
	"errors"
	"fmt"
)

// ErrNoSession is returned when an operation needs a live session and none exists.
var ErrNoSession = errors.New("no active session")

// ErrSessionActive is returned when starting a session while one is already live.
var ErrSessionActive = errors.New("a session is already active")

// OutOfRangeError reports a mutation that addressed a nonexistent exercise
// id or set index. The session is left unchanged.
type OutOfRangeError struct {
	ExerciseID string
	SetIndex   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("set %d of exercise %q does not exist", e.SetIndex, e.ExerciseID)
}
