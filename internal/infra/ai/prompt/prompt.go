package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bryanwahyu/platex-api/internal/domain/ai"
	"github.com/bryanwahyu/platex-api/internal/domain/analysis"
)

// Builders are pure: they map a task payload to an ai.Prompt and never do I/O.
// Each builder embeds the exact output schema so the prompt and the decoder
// in internal/domain/analysis cannot drift apart silently.

// menuTextCap bounds the menu text embedded in a prompt. The cut is a fixed
// character count so truncation is deterministic.
const menuTextCap = 1000

// MealAnalysis builds the vision/text prompt for a meal photo or description.
// When text is empty the model works from the attached image alone.
func MealAnalysis(text string) ai.Prompt {
	system := `You are an expert nutritionist. Analyze the food in the image or description.
1. Identify ALL visible food items separately (e.g., "Grilled Chicken", "Brown Rice", "Broccoli").
2. Estimate the portion size (e.g., "1 cup", "150g") and weight in grams for each item.
3. Estimate calories, carbs, protein, fat, fiber, and sugar for each item based on the estimated weight.
4. Provide a health score (0-100) based on balance, nutrient density, and processing level.
5. Estimate the Glycemic Load (Low, Medium, High).
6. Provide specific warnings if applicable (e.g., "High Sodium", "High Sugar", "Low Protein").

Return a JSON object with this exact schema:
{
  "ingredients": [
    {
      "name": "string",
      "category": "string",
      "portion_estimate": "string",
      "grams": number,
      "calories": number,
      "carbs": number,
      "protein": number,
      "fat": number,
      "fiber": number,
      "sugar": number
    }
  ],
  "total_calories": number,
  "total_carbs": number,
  "total_protein": number,
  "total_fat": number,
  "total_fiber": number,
  "total_sugar": number,
  "health_score": number,
  "glycemic_load": "string",
  "warnings": ["string"]
}
Do not include markdown formatting. Return only the JSON string.`

	user := "Analyze the attached meal photo."
	if strings.TrimSpace(text) != "" {
		user = "Description: " + text
	}
	return ai.Prompt{System: system, User: user, JSON: true}
}

// VoiceFoodLog builds the prompt for a spoken food description.
func VoiceFoodLog(text string) ai.Prompt {
	system := `You are a nutritionist API. Analyze the food description you are given.
Return a JSON object with:
- food_name (string)
- total_calories (number)
- total_protein (number)
- total_carbs (number)
- total_fat (number)
- health_score (1-100 number)
- glycemic_load (Low/Medium/High)
- ingredients (array of strings, breakdown of what's in it)
- warnings (array of strings if any unhealthy additives/high sugar)

Return ONLY JSON. No markdown formatting.`
	return ai.Prompt{System: system, User: fmt.Sprintf("Analyze this food description: %q", text), JSON: true}
}

// RecipeSuggestion builds the prompt for a single recipe from available ingredients.
func RecipeSuggestion(ingredients []string) ai.Prompt {
	system := `You are an expert chef and nutritionist.
Suggest ONE healthy, delicious recipe that can be made primarily from the user's ingredients.
You can add common pantry staples (oil, salt, spices, basic veggies).

Return ONLY valid JSON with this structure (no markdown, no code blocks, just raw JSON):
{
  "name": "Recipe Name",
  "description": "Brief tempting description",
  "time": "35 mins",
  "calories": 450,
  "ingredients": ["1 cup rice", "200g chicken"],
  "instructions": "Step 1: Do this. Step 2: Do that. Step 3: Serve hot."
}`
	return ai.Prompt{
		System: system,
		User:   "Available ingredients: " + strings.Join(ingredients, ", "),
		JSON:   true,
	}
}

// DietPlan builds the prompt for a personalized one-day diet plan.
func DietPlan(p analysis.Profile) ai.Prompt {
	system := `You are a professional nutritionist API that outputs strictly valid JSON.
Calculate the user's approximate TDEE and target calories for their goal, then create a personalized 1-day diet plan.
Provide the plan in strict JSON format with the following structure:
{
  "target_calories": number,
  "target_macros": { "protein": "xg", "carbs": "xg", "fat": "xg" },
  "meals": [
    {
      "type": "Breakfast",
      "name": "Meal Name",
      "description": "Brief description of ingredients/prep",
      "calories": number,
      "protein": number,
      "carbs": number,
      "fat": number
    },
    { "type": "Lunch", ... },
    { "type": "Dinner", ... },
    { "type": "Snack", ... }
  ],
  "advice": "A short paragraph of advice for this specific user."
}
IMPORTANT: Return ONLY the raw JSON string. Do not include markdown formatting or any introductory text.`

	user := fmt.Sprintf(`User profile:
- Age: %d
- Gender: %s
- Height: %.0f cm
- Weight: %.0f kg
- Activity Level: %s
- Goal: %s
- Dietary Preference: %s`,
		p.Age, p.Gender, p.Height, p.Weight, p.ActivityLevel, p.Goal, p.Preference)
	return ai.Prompt{System: system, User: user, JSON: true}
}

// MenuScan builds the prompt for scanning a restaurant menu against the
// user's goals. Menu text beyond menuTextCap characters is dropped.
func MenuScan(menuText string, goals analysis.Profile) ai.Prompt {
	system := `You are a Nutritionist AI. Analyze the restaurant menu text based on the user's goals.
Return a JSON object:
{
  "recommended_items": [
    { "name": "Item Name", "reason": "High protein, fits macros", "match_score": 95 }
  ],
  "avoid_items": [
    { "name": "Item Name", "reason": "High sugar/fried", "warning_level": "high" }
  ]
}
Return only the JSON string, no markdown.`

	truncated := menuText
	if len(truncated) > menuTextCap {
		truncated = truncated[:menuTextCap] + "..."
	}
	goalsJSON, _ := json.Marshal(goals)
	user := fmt.Sprintf("User Goals: %s\nMenu Text: %q", goalsJSON, truncated)
	return ai.Prompt{System: system, User: user, JSON: true}
}

// WeeklyMealPlan builds the prompt for a seven-day plan.
func WeeklyMealPlan(p analysis.Profile) ai.Prompt {
	system := `You are a meal planning API. Generate a 7-day meal plan for the user.

Return ONLY a valid JSON object with this structure:
{
  "Monday": {
    "breakfast": { "name": "Meal Name", "calories": 400 },
    "lunch": { "name": "Meal Name", "calories": 550 },
    "dinner": { "name": "Meal Name", "calories": 600 },
    "snack": { "name": "Snack Name", "calories": 200 }
  },
  "Tuesday": { ... },
  ... (continue for all 7 days)
}

Make meals varied, healthy, and practical. Match calories to the goal.
No markdown, no code blocks, just raw JSON.`

	user := fmt.Sprintf("Goal: %s\nDiet preference: %s\nActivity level: %s",
		orDefault(p.Goal, "maintenance"),
		orDefault(p.Preference, "omnivore"),
		orDefault(p.ActivityLevel, "moderate"))
	return ai.Prompt{System: system, User: user, JSON: true}
}

// VoiceCommand builds the command-routing prompt; the transcript goes in verbatim.
func VoiceCommand(transcript string) ai.Prompt {
	system := `You are Jarvis, an advanced AI controller for PlateX (a nutrition app).
Your goal is to interpret user voice commands and return a structured JSON response.

AVAILABLE ACTIONS:
1. NAVIGATE - Go to a specific page.
   Pages: /dashboard, /meal-prep, /fridge (Clean Fridge), /profile, /progress, /social, /settings
2. LOG_FOOD - User wants to log food. Extract the food items.
3. QUERY_DATA - User asks about their stats (calories, protein, health score).
4. START_WORKFLOW - Complex multi-step actions (e.g., "Start cooking mode").
5. CHAT - General conversation.

RESPONSE FORMAT (JSON ONLY):
{
  "action": "NAVIGATE" | "LOG_FOOD" | "QUERY_DATA" | "START_WORKFLOW" | "CHAT",
  "payload": {
     "destination": "/path" (for NAVIGATE),
     "food_items": ["item1", "item2"] (for LOG_FOOD),
     "query_type": "calories" | "protein" | "weight" (for QUERY_DATA),
     "workflow": "chef_mode" (for START_WORKFLOW)
  },
  "speech_response": "Short, natural text for TTS to say."
}

EXAMPLES:
User: "Take me to my meal plan."
Response: {"action": "NAVIGATE", "payload": {"destination": "/meal-prep"}, "speech_response": "Opening your meal plan."}

User: "I ate a banana and two eggs."
Response: {"action": "LOG_FOOD", "payload": {"food_items": ["banana", "2 eggs"]}, "speech_response": "Logging a banana and two eggs."}

User: "How many calories have I eaten?"
Response: {"action": "QUERY_DATA", "payload": {"query_type": "calories"}, "speech_response": "Let me check your calorie intake."}

User: "Start cooking mode for this recipe."
Response: {"action": "START_WORKFLOW", "payload": {"workflow": "chef_mode"}, "speech_response": "Activating Chef Mode."}`

	return ai.Prompt{System: system, User: transcript, JSON: true}
}

// chatHistoryCap bounds how many past turns are replayed into the prompt.
const chatHistoryCap = 10

// Chat builds the free-form assistant prompt. This is the one task whose
// answer is plain text, not JSON.
func Chat(message string, history []analysis.ChatMessage, p *analysis.Profile) ai.Prompt {
	var context string
	if p != nil {
		context = fmt.Sprintf("User profile: Goal: %s, Diet: %s.",
			orDefault(p.Goal, "general health"), orDefault(p.Preference, "no restrictions"))
	}

	system := fmt.Sprintf(`You are PlateX AI, a friendly and knowledgeable nutrition assistant. You help users with:
- Diet and nutrition questions
- Calorie and macro calculations
- Meal suggestions based on their goals
- Explaining food analysis results
- Providing healthy eating tips
- Answering questions about their logged food history

%s

Keep responses concise, helpful, and encouraging. Use emojis occasionally to be friendly.
If asked about something unrelated to nutrition/health/food, politely redirect to nutrition topics.`, context)

	var b strings.Builder
	start := 0
	if len(history) > chatHistoryCap {
		start = len(history) - chatHistoryCap
	}
	for _, m := range history[start:] {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		role := m.Role
		if role != "assistant" {
			role = "user"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, m.Content)
	}
	b.WriteString("user: " + message)

	return ai.Prompt{System: system, User: b.String()}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
