package analysis

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dietPlanJSON(types ...string) []byte {
	meals := make([]map[string]any, 0, len(types))
	for _, tp := range types {
		meals = append(meals, map[string]any{"type": tp, "name": tp + " dish", "calories": 400})
	}
	b, _ := json.Marshal(map[string]any{
		"target_calories": 2000,
		"target_macros":   map[string]string{"protein": "150g", "carbs": "200g", "fat": "60g"},
		"meals":           meals,
		"advice":          "stay hydrated",
	})
	return b
}

func TestDecodeDietPlan(t *testing.T) {
	t.Run("AcceptsSlotsInAnyOrder", func(t *testing.T) {
		p, err := DecodeDietPlan(dietPlanJSON("Snack", "Dinner", "Breakfast", "Lunch"))
		require.NoError(t, err)
		assert.Len(t, p.Meals, 4)
		assert.Equal(t, 2000.0, p.TargetCalories)
		assert.Equal(t, "150g", p.TargetMacros.Protein)
	})

	t.Run("RejectsWrongMealCount", func(t *testing.T) {
		_, err := DecodeDietPlan(dietPlanJSON("Breakfast", "Lunch", "Dinner"))
		require.Error(t, err)
	})

	t.Run("RejectsDuplicateSlot", func(t *testing.T) {
		_, err := DecodeDietPlan(dietPlanJSON("Breakfast", "Breakfast", "Lunch", "Dinner"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Snack")
	})
}

func TestDecodeWeeklyMealPlan(t *testing.T) {
	fullWeek := func() map[string]any {
		days := map[string]any{}
		for _, d := range Weekdays {
			days[d] = map[string]any{
				"breakfast": map[string]any{"name": "oats", "calories": 300},
				"lunch":     map[string]any{"name": "salad", "calories": 450},
				"dinner":    map[string]any{"name": "fish", "calories": 550},
				"snack":     map[string]any{"name": "nuts", "calories": 150},
			}
		}
		return days
	}

	t.Run("AcceptsAllSevenDays", func(t *testing.T) {
		b, _ := json.Marshal(fullWeek())
		p, err := DecodeWeeklyMealPlan(b)
		require.NoError(t, err)
		require.Len(t, p.Days, 7)
		assert.Equal(t, "oats", p.Days["Monday"].Breakfast.Name)
		assert.Equal(t, 550.0, p.Days["Sunday"].Dinner.Calories)
	})

	t.Run("RejectsAMissingDay", func(t *testing.T) {
		for _, missing := range Weekdays {
			days := fullWeek()
			delete(days, missing)
			b, _ := json.Marshal(days)
			_, err := DecodeWeeklyMealPlan(b)
			require.Error(t, err, fmt.Sprintf("missing %s should fail", missing))
		}
	})
}
