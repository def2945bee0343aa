package analysis

import (
	"encoding/json"
	"fmt"
)

// TargetMacros are daily macro targets; the model reports them as strings
// like "150g" so they are passed through untouched.
type TargetMacros struct {
	Protein string `json:"protein"`
	Carbs   string `json:"carbs"`
	Fat     string `json:"fat"`
}

// PlanMeal is one meal slot of a one-day diet plan.
type PlanMeal struct {
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
}

// DietPlan is the normalized record for a personalized one-day diet plan.
type DietPlan struct {
	TargetCalories float64      `json:"target_calories"`
	TargetMacros   TargetMacros `json:"target_macros"`
	Meals          []PlanMeal   `json:"meals"`
	Advice         string       `json:"advice"`
	IsMock         bool         `json:"is_mock,omitempty"`
}

// dietPlanMealTypes is the fixed slot set a valid plan must cover, in any order.
var dietPlanMealTypes = []string{"Breakfast", "Lunch", "Dinner", "Snack"}

// DecodeDietPlan parses and normalizes a sanitized model response. A plan
// must have exactly one meal per slot (Breakfast/Lunch/Dinner/Snack).
func DecodeDietPlan(data []byte) (*DietPlan, error) {
	var p DietPlan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if len(p.Meals) != len(dietPlanMealTypes) {
		return nil, fmt.Errorf("expected %d meals, got %d", len(dietPlanMealTypes), len(p.Meals))
	}
	seen := map[string]bool{}
	for _, m := range p.Meals {
		seen[m.Type] = true
	}
	for _, t := range dietPlanMealTypes {
		if !seen[t] {
			return nil, fmt.Errorf("plan is missing a %s meal", t)
		}
	}
	return &p, nil
}

// PlannedMeal is one meal slot of a weekly plan day.
type PlannedMeal struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
}

// DayPlan covers one weekday of a weekly meal plan.
type DayPlan struct {
	Breakfast PlannedMeal `json:"breakfast"`
	Lunch     PlannedMeal `json:"lunch"`
	Dinner    PlannedMeal `json:"dinner"`
	Snack     PlannedMeal `json:"snack"`
}

// Weekdays in plan order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeeklyMealPlan is the normalized record for a seven-day plan, keyed by weekday.
type WeeklyMealPlan struct {
	Days   map[string]DayPlan `json:"plan"`
	IsMock bool               `json:"is_mock,omitempty"`
}

// DecodeWeeklyMealPlan parses and normalizes a sanitized model response.
// The model answers with the weekday map at the top level.
func DecodeWeeklyMealPlan(data []byte) (*WeeklyMealPlan, error) {
	var days map[string]DayPlan
	if err := json.Unmarshal(data, &days); err != nil {
		return nil, err
	}
	for _, d := range Weekdays {
		if _, ok := days[d]; !ok {
			return nil, fmt.Errorf("plan is missing %s", d)
		}
	}
	return &WeeklyMealPlan{Days: days}, nil
}
