package analysis

import (
	"encoding/json"
	"fmt"
)

// MealItem is one identified food item with its estimated nutrients.
type MealItem struct {
	Name            string  `json:"name"`
	Category        string  `json:"category,omitempty"`
	PortionEstimate string  `json:"portion_estimate"`
	Grams           float64 `json:"grams"`
	Calories        float64 `json:"calories"`
	Carbs           float64 `json:"carbs"`
	Protein         float64 `json:"protein"`
	Fat             float64 `json:"fat"`
	Fiber           float64 `json:"fiber"`
	Sugar           float64 `json:"sugar"`
}

// MealAnalysis is the normalized record for a photo or free-text meal analysis.
// After DecodeMealAnalysis every numeric field is present; absent totals are
// derived from the item list, model-supplied totals are kept as-is even when
// they disagree with the item sums.
type MealAnalysis struct {
	Ingredients   []MealItem `json:"ingredients"`
	TotalCalories float64    `json:"total_calories"`
	TotalCarbs    float64    `json:"total_carbs"`
	TotalProtein  float64    `json:"total_protein"`
	TotalFat      float64    `json:"total_fat"`
	TotalFiber    float64    `json:"total_fiber"`
	TotalSugar    float64    `json:"total_sugar"`
	HealthScore   float64    `json:"health_score"`
	GlycemicLoad  string     `json:"glycemic_load"`
	Warnings      []string   `json:"warnings"`

	// DerivedTotals marks records whose totals were summed from the item
	// list because the model omitted them.
	DerivedTotals bool `json:"derived_totals,omitempty"`
	IsMock        bool `json:"is_mock,omitempty"`
}

// mealAnalysisWire uses pointers for the aggregate fields so a missing total
// can be told apart from an explicit zero.
type mealAnalysisWire struct {
	Ingredients   []MealItem `json:"ingredients"`
	TotalCalories *float64   `json:"total_calories"`
	TotalCarbs    *float64   `json:"total_carbs"`
	TotalProtein  *float64   `json:"total_protein"`
	TotalFat      *float64   `json:"total_fat"`
	TotalFiber    *float64   `json:"total_fiber"`
	TotalSugar    *float64   `json:"total_sugar"`
	HealthScore   float64    `json:"health_score"`
	GlycemicLoad  string     `json:"glycemic_load"`
	Warnings      []string   `json:"warnings"`
}

// DecodeMealAnalysis parses and normalizes a sanitized model response.
func DecodeMealAnalysis(data []byte) (*MealAnalysis, error) {
	var w mealAnalysisWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	if w.Ingredients == nil {
		return nil, fmt.Errorf("required field ingredients is missing")
	}

	m := &MealAnalysis{
		Ingredients:  w.Ingredients,
		HealthScore:  w.HealthScore,
		GlycemicLoad: w.GlycemicLoad,
		Warnings:     w.Warnings,
	}
	if m.Warnings == nil {
		m.Warnings = []string{}
	}

	fill := func(dst *float64, supplied *float64, sum float64) {
		if supplied != nil {
			*dst = *supplied
			return
		}
		*dst = sum
		m.DerivedTotals = true
	}
	var cal, carbs, protein, fat, fiber, sugar float64
	for _, it := range w.Ingredients {
		cal += it.Calories
		carbs += it.Carbs
		protein += it.Protein
		fat += it.Fat
		fiber += it.Fiber
		sugar += it.Sugar
	}
	fill(&m.TotalCalories, w.TotalCalories, cal)
	fill(&m.TotalCarbs, w.TotalCarbs, carbs)
	fill(&m.TotalProtein, w.TotalProtein, protein)
	fill(&m.TotalFat, w.TotalFat, fat)
	fill(&m.TotalFiber, w.TotalFiber, fiber)
	fill(&m.TotalSugar, w.TotalSugar, sugar)

	return m, nil
}
