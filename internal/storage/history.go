package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/claude/liftlog/internal/models"
)

// AppendHistory inserts a finished-workout record. Re-appending the same
// record id is a no-op, which keeps the importer idempotent.
func (db *DB) AppendHistory(ctx context.Context, rec models.HistoryRecord) error {
	var exercises []byte
	if rec.Exercises != nil {
		var err error
		exercises, err = json.Marshal(rec.Exercises)
		if err != nil {
			return fmt.Errorf("encoding exercise log: %w", err)
		}
	}

	_, err := db.Pool.Exec(ctx,
		`INSERT INTO history (id, completed_at, plan_name, day_name, duration_sec,
		 total_volume, exercises_completed, exercises)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 ON CONFLICT (id) DO NOTHING`,
		rec.ID, rec.CompletedAt, rec.PlanName, rec.DayName, rec.DurationSec,
		rec.TotalVolume, rec.ExercisesCompleted, exercises)
	if err != nil {
		return fmt.Errorf("inserting history record: %w", err)
	}
	return nil
}

// LoadHistory retrieves all finished-workout records, newest first.
func (db *DB) LoadHistory(ctx context.Context) ([]models.HistoryRecord, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, completed_at, plan_name, day_name, duration_sec,
		 total_volume, exercises_completed, exercises
		 FROM history
		 ORDER BY completed_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var result []models.HistoryRecord
	for rows.Next() {
		var rec models.HistoryRecord
		var exercises []byte
		if err := rows.Scan(&rec.ID, &rec.CompletedAt, &rec.PlanName, &rec.DayName,
			&rec.DurationSec, &rec.TotalVolume, &rec.ExercisesCompleted, &exercises); err != nil {
			return nil, fmt.Errorf("scanning history record: %w", err)
		}
		if len(exercises) > 0 {
			if err := json.Unmarshal(exercises, &rec.Exercises); err != nil {
				return nil, fmt.Errorf("decoding exercise log %s: %w", rec.ID, err)
			}
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}
