package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	domain "github.com/bryanwahyu/platex-api/internal/domain/recipe"
)

type RecipeRepository struct {
	db *sql.DB
}

func NewRecipeRepository(db *sql.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Save inserts or updates a saved recipe.
func (r *RecipeRepository) Save(ctx context.Context, rec *domain.SavedRecipe) error {
	const q = `
INSERT INTO saved_recipes
  (id, user_id, name, description, cook_time, calories, ingredients, instructions,
   meal_type, planned_date, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
ON CONFLICT (id) DO UPDATE SET
  name=EXCLUDED.name,
  description=EXCLUDED.description,
  cook_time=EXCLUDED.cook_time,
  calories=EXCLUDED.calories,
  ingredients=EXCLUDED.ingredients,
  instructions=EXCLUDED.instructions,
  meal_type=EXCLUDED.meal_type,
  planned_date=EXCLUDED.planned_date;
`
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, q,
		rec.ID, rec.UserID, rec.Name, rec.Description, rec.Time, rec.Calories,
		jsonString(rec.Ingredients), rec.Instructions, rec.MealType, rec.PlannedDate, createdAt)
	return err
}

// ListByUser returns the user's saved recipes ordered by planned date.
func (r *RecipeRepository) ListByUser(ctx context.Context, userID string) ([]*domain.SavedRecipe, error) {
	const q = `
SELECT id, user_id, name, description, cook_time, calories, ingredients, instructions,
       meal_type, planned_date, created_at
FROM saved_recipes
WHERE user_id=$1
ORDER BY planned_date ASC, created_at ASC;
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.SavedRecipe
	for rows.Next() {
		var rec domain.SavedRecipe
		var ingredients string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Name, &rec.Description, &rec.Time,
			&rec.Calories, &ingredients, &rec.Instructions, &rec.MealType,
			&rec.PlannedDate, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(ingredients), &rec.Ingredients); err != nil {
			rec.Ingredients = []string{}
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}
