package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.plans.ListPlans(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if plans == nil {
		plans = []models.TrainingPlan{}
	}
	writeJSON(w, http.StatusOK, plans)
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var plan models.TrainingPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if plan.Name == "" || len(plan.Days) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "plan name and at least one day are required"})
		return
	}

	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	if plan.Source == "" {
		plan.Source = models.PlanSourceAuthored
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now()
	}
	fillPlanIDs(&plan)

	if err := s.plans.InsertPlan(r.Context(), plan); err != nil {
		s.log.Error("create plan", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.plans.GetPlan(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, storage.ErrPlanNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "plan not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	err := s.plans.DeletePlan(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, storage.ErrPlanNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "plan not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleIngestHistory appends already-finalized records, e.g. from the
// bulk importer. Records keep their own ids so re-imports are idempotent.
func (s *Server) handleIngestHistory(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Records []models.HistoryRecord `json:"records"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	appended := 0
	for _, rec := range payload.Records {
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		if err := s.history.AppendHistory(r.Context(), rec); err != nil {
			s.log.Error("ingest history", "record_id", rec.ID, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":    err.Error(),
				"appended": appended,
			})
			return
		}
		appended++
	}
	writeJSON(w, http.StatusOK, map[string]int{"appended": appended})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		limit = n
	}

	records, err := s.stats.History(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if records == nil {
		records = []models.HistoryRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleProgression(w http.ResponseWriter, r *http.Request) {
	exercise := r.URL.Query().Get("exercise")
	if exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise parameter required"})
		return
	}

	series, err := s.stats.Progression(r.Context(), exercise)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func (s *Server) handleWeeklyActivity(w http.ResponseWriter, r *http.Request) {
	weeks := 4
	if v := r.URL.Query().Get("weeks"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid weeks"})
			return
		}
		weeks = n
	}

	buckets, err := s.stats.WeeklyActivity(r.Context(), weeks)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, buckets)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.stats.Summary(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// fillPlanIDs assigns ids to days and exercises that arrive without one,
// e.g. plans authored by hand or by the external AI call.
func fillPlanIDs(plan *models.TrainingPlan) {
	for d := range plan.Days {
		if plan.Days[d].ID == "" {
			plan.Days[d].ID = uuid.NewString()
		}
		for e := range plan.Days[d].Exercises {
			if plan.Days[d].Exercises[e].ID == "" {
				plan.Days[d].Exercises[e].ID = uuid.NewString()
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
