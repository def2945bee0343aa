package recipe

import "time"

// RecipeID identifier type
type RecipeID string

// SavedRecipe is a recipe the user pinned to their planner.
type SavedRecipe struct {
	ID           RecipeID  `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Time         string    `json:"time,omitempty"`
	Calories     float64   `json:"calories"`
	Ingredients  []string  `json:"ingredients"`
	Instructions string    `json:"instructions,omitempty"`
	MealType     string    `json:"meal_type"`
	PlannedDate  string    `json:"planned_date"`
	CreatedAt    time.Time `json:"created_at"`
}
