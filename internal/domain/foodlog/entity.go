package foodlog

import (
	"time"

	"github.com/bryanwahyu/platex-api/internal/domain/analysis"
)

// LogID identifier type
type LogID string

// Source enum: how the log entry was captured.
type Source string

const (
	SourcePhoto Source = "photo"
	SourceVoice Source = "voice"
)

// FoodLog is a persisted meal entry. Created once per successful analysis;
// never mutated by the pipeline afterwards.
type FoodLog struct {
	ID            LogID               `json:"id"`
	UserID        string              `json:"user_id,omitempty"`
	Source        Source              `json:"source"`
	FoodName      string              `json:"food_name,omitempty"`
	ImageURL      string              `json:"image_url,omitempty"`
	Ingredients   []analysis.MealItem `json:"ingredients,omitempty"`
	TotalCalories float64             `json:"total_calories"`
	TotalCarbs    float64             `json:"total_carbs"`
	TotalProtein  float64             `json:"total_protein"`
	TotalFat      float64             `json:"total_fat"`
	TotalFiber    float64             `json:"total_fiber"`
	TotalSugar    float64             `json:"total_sugar"`
	HealthScore   float64             `json:"health_score"`
	GlycemicLoad  string              `json:"glycemic_load,omitempty"`
	Warnings      []string            `json:"warnings,omitempty"`
	RawResult     string              `json:"-"` // model output JSON kept for auditing
	CreatedAt     time.Time           `json:"created_at"`
}

// Summary aggregates a user's recent logs.
type Summary struct {
	Logs           int     `json:"total_logs"`
	Calories       float64 `json:"calories"`
	Protein        float64 `json:"protein"`
	Carbs          float64 `json:"carbs"`
	Fat            float64 `json:"fat"`
	AvgHealthScore float64 `json:"avg_health_score"`
}
