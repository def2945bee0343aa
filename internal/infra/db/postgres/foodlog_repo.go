package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/bryanwahyu/platex-api/internal/domain/analysis"
	domain "github.com/bryanwahyu/platex-api/internal/domain/foodlog"
)

type FoodLogRepository struct {
	db *sql.DB
}

func NewFoodLogRepository(db *sql.DB) *FoodLogRepository {
	return &FoodLogRepository{db: db}
}

// Save inserts or updates a food log row.
func (r *FoodLogRepository) Save(ctx context.Context, l *domain.FoodLog) error {
	const q = `
INSERT INTO food_logs
  (id, user_id, source, food_name, image_url, ingredients, total_calories, total_carbs,
   total_protein, total_fat, total_fiber, total_sugar, health_score, glycemic_load,
   warnings, raw_result, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
ON CONFLICT (id) DO UPDATE SET
  food_name=EXCLUDED.food_name,
  image_url=EXCLUDED.image_url,
  ingredients=EXCLUDED.ingredients,
  total_calories=EXCLUDED.total_calories,
  total_carbs=EXCLUDED.total_carbs,
  total_protein=EXCLUDED.total_protein,
  total_fat=EXCLUDED.total_fat,
  total_fiber=EXCLUDED.total_fiber,
  total_sugar=EXCLUDED.total_sugar,
  health_score=EXCLUDED.health_score,
  glycemic_load=EXCLUDED.glycemic_load,
  warnings=EXCLUDED.warnings,
  raw_result=EXCLUDED.raw_result;
`
	raw := l.RawResult
	if raw == "" {
		raw = "{}"
	}
	createdAt := l.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, q,
		l.ID, l.UserID, l.Source, l.FoodName, l.ImageURL,
		jsonString(l.Ingredients), l.TotalCalories, l.TotalCarbs,
		l.TotalProtein, l.TotalFat, l.TotalFiber, l.TotalSugar,
		l.HealthScore, l.GlycemicLoad, jsonString(l.Warnings), raw, createdAt)
	return err
}

// Get returns a single log owned by the user.
func (r *FoodLogRepository) Get(ctx context.Context, userID string, id domain.LogID) (*domain.FoodLog, error) {
	const q = `
SELECT id, user_id, source, food_name, image_url, ingredients, total_calories, total_carbs,
       total_protein, total_fat, total_fiber, total_sugar, health_score, glycemic_load,
       warnings, raw_result, created_at
FROM food_logs
WHERE user_id=$1 AND id=$2;
`
	row := r.db.QueryRowContext(ctx, q, userID, id)
	return scanFoodLog(row)
}

// Latest returns the user's most recent logs, newest first.
func (r *FoodLogRepository) Latest(ctx context.Context, userID string, limit int) ([]*domain.FoodLog, error) {
	if limit <= 0 {
		limit = 20
	}

	const q = `
SELECT id, user_id, source, food_name, image_url, ingredients, total_calories, total_carbs,
       total_protein, total_fat, total_fiber, total_sugar, health_score, glycemic_load,
       warnings, raw_result, created_at
FROM food_logs
WHERE user_id=$1
ORDER BY created_at DESC, id DESC
LIMIT $2;
`
	rows, err := r.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.FoodLog
	for rows.Next() {
		l, err := scanFoodLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Summary aggregates totals over the last sinceDays days.
func (r *FoodLogRepository) Summary(ctx context.Context, userID string, sinceDays int) (*domain.Summary, error) {
	if sinceDays <= 0 {
		sinceDays = 7
	}

	const q = `
SELECT COUNT(*),
       COALESCE(SUM(total_calories),0),
       COALESCE(SUM(total_protein),0),
       COALESCE(SUM(total_carbs),0),
       COALESCE(SUM(total_fat),0),
       COALESCE(AVG(health_score),0)
FROM food_logs
WHERE user_id=$1 AND created_at >= NOW() - make_interval(days => $2);
`
	var s domain.Summary
	err := r.db.QueryRowContext(ctx, q, userID, sinceDays).Scan(
		&s.Logs, &s.Calories, &s.Protein, &s.Carbs, &s.Fat, &s.AvgHealthScore)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFoodLog(row rowScanner) (*domain.FoodLog, error) {
	var l domain.FoodLog
	var ingredients, warnings string
	if err := row.Scan(&l.ID, &l.UserID, &l.Source, &l.FoodName, &l.ImageURL,
		&ingredients, &l.TotalCalories, &l.TotalCarbs, &l.TotalProtein, &l.TotalFat,
		&l.TotalFiber, &l.TotalSugar, &l.HealthScore, &l.GlycemicLoad,
		&warnings, &l.RawResult, &l.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(ingredients), &l.Ingredients); err != nil {
		l.Ingredients = []analysis.MealItem{}
	}
	if err := json.Unmarshal([]byte(warnings), &l.Warnings); err != nil {
		l.Warnings = []string{}
	}
	return &l, nil
}
