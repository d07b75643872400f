package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/claude/liftlog/internal/engine"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
)

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlanID string `json:"plan_id"`
		DayID  string `json:"day_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	plan, err := s.plans.GetPlan(r.Context(), req.PlanID)
	if errors.Is(err, storage.ErrPlanNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "plan not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	session, err := s.manager.Start(r.Context(), plan, req.DayID)
	if errors.Is(err, engine.ErrSessionActive) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handleCurrentSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.manager.Current()
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.Cancel(); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleFinishSession finalizes the live session and records it. A store
// failure keeps the session live and returns the unpersisted record so the
// client can retry instead of losing the workout.
func (s *Server) handleFinishSession(w http.ResponseWriter, r *http.Request) {
	rec, err := s.manager.Finish(r.Context())
	if errors.Is(err, engine.ErrNoSession) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		s.log.Error("finish session", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error":  err.Error(),
			"record": rec,
		})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// setRequest addresses one set in the live session. Value is only present
// on field updates and is decoded per field.
type setRequest struct {
	ExerciseID string          `json:"exercise_id"`
	SetIndex   int             `json:"set_index"`
	Field      string          `json:"field,omitempty"`
	Value      json.RawMessage `json:"value,omitempty"`
}

func (s *Server) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	var req setRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	op, err := fieldOp(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.mutateSession(w, op)
}

func (s *Server) handleToggleSet(w http.ResponseWriter, r *http.Request) {
	var req setRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.mutateSession(w, func(session *models.Session) error {
		return engine.ToggleCompleted(session, req.ExerciseID, req.SetIndex)
	})
}

func (s *Server) handleAddSet(w http.ResponseWriter, r *http.Request) {
	var req setRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.mutateSession(w, func(session *models.Session) error {
		return engine.AddSet(session, req.ExerciseID, nil)
	})
}

func (s *Server) handleRemoveSet(w http.ResponseWriter, r *http.Request) {
	var req setRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.mutateSession(w, func(session *models.Session) error {
		return engine.RemoveSet(session, req.ExerciseID)
	})
}

// mutateSession runs one mutator against the live session and writes the
// updated session, mapping engine errors to HTTP statuses.
func (s *Server) mutateSession(w http.ResponseWriter, op func(*models.Session) error) {
	session, err := s.manager.Mutate(op)
	if err != nil {
		var oor *engine.OutOfRangeError
		switch {
		case errors.Is(err, engine.ErrNoSession):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		case errors.As(err, &oor):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// fieldOp translates a field-update request into an engine mutation.
func fieldOp(req setRequest) (func(*models.Session) error, error) {
	switch req.Field {
	case "reps":
		var reps int
		if err := json.Unmarshal(req.Value, &reps); err != nil {
			return nil, errors.New("reps value must be an integer")
		}
		return func(s *models.Session) error {
			return engine.SetReps(s, req.ExerciseID, req.SetIndex, reps)
		}, nil
	case "weight":
		var weight float64
		if err := json.Unmarshal(req.Value, &weight); err != nil {
			return nil, errors.New("weight value must be a number")
		}
		return func(s *models.Session) error {
			return engine.SetWeight(s, req.ExerciseID, req.SetIndex, weight)
		}, nil
	case "completed":
		var completed bool
		if err := json.Unmarshal(req.Value, &completed); err != nil {
			return nil, errors.New("completed value must be a boolean")
		}
		return func(s *models.Session) error {
			return engine.SetCompleted(s, req.ExerciseID, req.SetIndex, completed)
		}, nil
	default:
		return nil, errors.New(`field must be one of "reps", "weight", "completed"`)
	}
}
