package mysql

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

// Save inserts a saved recipe.
func (r *RecipeRepository) Save(ctx context.Context, rec *domain.SavedRecipe) error {
	const q = `
INSERT INTO saved_recipes
  (id, user_id, name, description, cook_time, calories, ingredients, instructions,
   meal_type, planned_date, created_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  name=VALUES(name), description=VALUES(description), cook_time=VALUES(cook_time),
  calories=VALUES(calories), ingredients=VALUES(ingredients),
  instructions=VALUES(instructions), meal_type=VALUES(meal_type),
  planned_date=VALUES(planned_date);
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
WHERE user_id=?
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
