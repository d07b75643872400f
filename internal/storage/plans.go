package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/jackc/pgx/v5"
)

// ErrPlanNotFound is returned when a plan id does not exist.
var ErrPlanNotFound = errors.New("plan not found")

// InsertPlan stores a training plan. Plans are immutable after creation,
// so there is no update path.
func (db *DB) InsertPlan(ctx context.Context, plan models.TrainingPlan) error {
	days, err := json.Marshal(plan.Days)
	if err != nil {
		return fmt.Errorf("encoding plan days: %w", err)
	}

	_, err = db.Pool.Exec(ctx,
		`INSERT INTO plans (id, name, description, source, created_at, days)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		plan.ID, plan.Name, plan.Description, plan.Source, plan.CreatedAt, days)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

// ListPlans retrieves all training plans, newest first.
func (db *DB) ListPlans(ctx context.Context) ([]models.TrainingPlan, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, description, source, created_at, days
		 FROM plans
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer rows.Close()

	var result []models.TrainingPlan
	for rows.Next() {
		plan, err := scanPlan(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, plan)
	}
	return result, rows.Err()
}

// GetPlan retrieves a single training plan by id.
func (db *DB) GetPlan(ctx context.Context, planID string) (*models.TrainingPlan, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, name, description, source, created_at, days
		 FROM plans
		 WHERE id = $1`, planID)

	plan, err := scanPlan(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// DeletePlan removes a plan. History records keep their captured plan and
// day names, so deletion never orphans them.
func (db *DB) DeletePlan(ctx context.Context, planID string) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM plans WHERE id = $1`, planID)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func scanPlan(scan func(dest ...any) error) (models.TrainingPlan, error) {
	var plan models.TrainingPlan
	var days []byte
	if err := scan(&plan.ID, &plan.Name, &plan.Description, &plan.Source,
		&plan.CreatedAt, &days); err != nil {
		return plan, fmt.Errorf("scanning plan: %w", err)
	}
	if len(days) > 0 {
		if err := json.Unmarshal(days, &plan.Days); err != nil {
			return plan, fmt.Errorf("decoding plan days %s: %w", plan.ID, err)
		}
	}
	return plan, nil
}
