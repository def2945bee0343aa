package analysis

// Task identifies which generation schema a request runs under. Every task
// has a prompt builder, a decoder and a canned demo record registered for it.
type Task string

const (
	TaskMealAnalysis     Task = "meal_analysis"
	TaskVoiceFoodLog     Task = "voice_food_log"
	TaskRecipeSuggestion Task = "recipe_suggestion"
	TaskDietPlan         Task = "diet_plan"
	TaskMenuScan         Task = "menu_scan"
	TaskWeeklyMealPlan   Task = "weekly_meal_plan"
	TaskVoiceCommand     Task = "voice_command"
)

func (t Task) Valid() bool {
	switch t {
	case TaskMealAnalysis, TaskVoiceFoodLog, TaskRecipeSuggestion,
		TaskDietPlan, TaskMenuScan, TaskWeeklyMealPlan, TaskVoiceCommand:
		return true
	}
	return false
}
