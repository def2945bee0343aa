package analysis

import (
	domain "github.com/bryanwahyu/platex-api/internal/domain/analysis"
)

// Canned, schema-valid records returned when no backend credential is
// configured or the caller asked for demo mode. Fixed values keep demos and
// tests deterministic.

func mockMealAnalysis() *domain.MealAnalysis {
	return &domain.MealAnalysis{
		Ingredients: []domain.MealItem{
			{
				Name:            "Grilled Chicken Breast",
				Category:        "Protein",
				PortionEstimate: "150g",
				Grams:           150,
				Calories:        247,
				Protein:         46,
				Fat:             5,
			},
			{
				Name:            "Quinoa",
				Category:        "Carb",
				PortionEstimate: "1 cup",
				Grams:           185,
				Calories:        222,
				Carbs:           39,
				Protein:         8,
				Fat:             4,
				Fiber:           5,
				Sugar:           1,
			},
			{
				Name:            "Roasted Broccoli",
				Category:        "Vegetable",
				PortionEstimate: "1 cup",
				Grams:           90,
				Calories:        35,
				Carbs:           6,
				Protein:         2,
				Fiber:           2,
				Sugar:           1,
			},
		},
		TotalCalories: 504,
		TotalCarbs:    45,
		TotalProtein:  56,
		TotalFat:      9,
		TotalFiber:    7,
		TotalSugar:    2,
		HealthScore:   92,
		GlycemicLoad:  "Low",
		Warnings:      []string{},
		IsMock:        true,
	}
}

func mockVoiceFoodLog() *domain.VoiceFoodLog {
	return &domain.VoiceFoodLog{
		FoodName:      "Eggs and Toast",
		TotalCalories: 350,
		TotalProtein:  18,
		TotalCarbs:    30,
		TotalFat:      16,
		HealthScore:   74,
		GlycemicLoad:  "Medium",
		Ingredients:   []string{"2 eggs", "2 slices whole wheat toast", "butter"},
		Warnings:      []string{},
		IsMock:        true,
	}
}

func mockRecipe() *domain.Recipe {
	return &domain.Recipe{
		Name:        "One-Pan Lemon Chicken & Rice",
		Description: "Juicy chicken over fluffy rice with a bright lemon finish.",
		Time:        "35 mins",
		Calories:    450,
		Ingredients: []string{"1 cup rice", "200g chicken breast", "1 lemon", "2 tbsp olive oil", "salt & pepper"},
		Instructions: "Step 1: Season and sear the chicken. " +
			"Step 2: Add rice, stock and lemon juice, cover and simmer 20 minutes. " +
			"Step 3: Rest 5 minutes and serve hot.",
		IsMock: true,
	}
}

func mockDietPlan() *domain.DietPlan {
	return &domain.DietPlan{
		TargetCalories: 2100,
		TargetMacros:   domain.TargetMacros{Protein: "150g", Carbs: "210g", Fat: "70g"},
		Meals: []domain.PlanMeal{
			{Type: "Breakfast", Name: "Greek Yogurt Bowl", Description: "Greek yogurt, berries, granola", Calories: 420, Protein: 30, Carbs: 45, Fat: 12},
			{Type: "Lunch", Name: "Chicken Quinoa Salad", Description: "Grilled chicken, quinoa, mixed greens", Calories: 580, Protein: 45, Carbs: 55, Fat: 18},
			{Type: "Dinner", Name: "Baked Salmon & Veg", Description: "Salmon fillet, roasted vegetables, brown rice", Calories: 650, Protein: 48, Carbs: 60, Fat: 24},
			{Type: "Snack", Name: "Apple & Almond Butter", Description: "One apple with a tablespoon of almond butter", Calories: 250, Protein: 6, Carbs: 30, Fat: 12},
		},
		Advice: "Stay consistent with protein at every meal and keep hydration up; adjust portions if weight stalls for two weeks.",
		IsMock: true,
	}
}

func mockMenuScan() *domain.MenuScan {
	return &domain.MenuScan{
		RecommendedItems: []domain.RecommendedItem{
			{Name: "Grilled Salmon Plate", Reason: "High protein, fits macros", MatchScore: 95},
			{Name: "Quinoa Power Bowl", Reason: "Balanced macros, high fiber", MatchScore: 88},
		},
		AvoidItems: []domain.AvoidItem{
			{Name: "Loaded Cheese Fries", Reason: "Deep fried, very high fat", WarningLevel: "high"},
			{Name: "Triple Chocolate Shake", Reason: "High sugar", WarningLevel: "medium"},
		},
		IsMock: true,
	}
}

func mockWeeklyMealPlan() *domain.WeeklyMealPlan {
	day := domain.DayPlan{
		Breakfast: domain.PlannedMeal{Name: "Oatmeal with Berries", Calories: 400},
		Lunch:     domain.PlannedMeal{Name: "Chicken Wrap", Calories: 550},
		Dinner:    domain.PlannedMeal{Name: "Stir-Fried Tofu & Rice", Calories: 600},
		Snack:     domain.PlannedMeal{Name: "Mixed Nuts", Calories: 200},
	}
	days := make(map[string]domain.DayPlan, len(domain.Weekdays))
	for _, d := range domain.Weekdays {
		days[d] = day
	}
	return &domain.WeeklyMealPlan{Days: days, IsMock: true}
}

func mockVoiceCommand() *domain.VoiceCommand {
	return &domain.VoiceCommand{
		Action:         domain.ActionChat,
		Payload:        domain.CommandPayload{},
		SpeechResponse: "Demo mode is on, so I can't reach the assistant right now.",
		IsMock:         true,
	}
}

const mockChatReply = "I'm running in demo mode right now, but generally: aim for protein at every meal, plenty of vegetables, and steady hydration! 🥗"
