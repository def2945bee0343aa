package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bryanwahyu/platex-api/internal/application"
	domai "github.com/bryanwahyu/platex-api/internal/domain/ai"
	domain "github.com/bryanwahyu/platex-api/internal/domain/analysis"
	"github.com/bryanwahyu/platex-api/internal/domain/foodlog"
	"github.com/bryanwahyu/platex-api/internal/domain/recipe"
	"github.com/bryanwahyu/platex-api/internal/infra/ai/prompt"
)

// Service implements the generative-analysis pipeline use-cases.
// Stateless per request and safe for concurrent use.
//
// Every task follows the same ladder: demo gate → prompt → model invocation →
// sanitize → parse (one aggressive cleanup retry) → normalize → best-effort
// persistence. Failures are scoped to the single request; persistence
// failures degrade the result instead of failing it.
type Service struct {
	Vision  domai.Client // vision-capable backend; nil when no credential configured
	Text    domai.Client // text-only chat backend; nil when no credential configured
	Logs    foodlog.Repository
	Recipes recipe.Repository
	Media   foodlog.MediaStore
	Clock   application.Clock
	Logger  *zap.Logger
	Demo    bool // force canned responses regardless of credentials
}

// mocked reports whether the demo gate short-circuits this request: either
// the caller asked for demo mode, the server runs in demo mode, or the
// backend needed for the task has no credential.
func (s *Service) mocked(demo bool, client domai.Client) bool {
	return demo || s.Demo || client == nil
}

// generate runs one model invocation through the sanitize→parse→normalize
// ladder. A failed strict parse gets exactly one retry against the aggressive
// cleanup pass; there is never a second model call. Returns the normalized
// record plus the cleaned JSON for auditing.
func generate[T any](ctx context.Context, s *Service, task domain.Task, client domai.Client, p domai.Prompt, media *domai.Media, decode func([]byte) (*T, error)) (*T, string, error) {
	start := time.Now()
	raw, err := client.Generate(ctx, p, media)
	if err != nil {
		return nil, "", &domain.ModelError{Err: err}
	}
	s.Logger.Debug("model responded",
		zap.String("task", string(task)),
		zap.Duration("latency", time.Since(start)),
		zap.Int("chars", len(raw)))

	clean := StripFences(raw)
	if !json.Valid([]byte(clean)) {
		clean = ExtractJSON(clean)
		if !json.Valid([]byte(clean)) {
			s.Logger.Error("model output unparseable after cleanup retry",
				zap.String("task", string(task)), zap.String("raw", raw))
			return nil, "", &domain.ParseError{Raw: raw, Err: errors.New("response is not valid JSON")}
		}
		s.Logger.Warn("model output needed aggressive cleanup", zap.String("task", string(task)))
	}

	rec, err := decode([]byte(clean))
	if err != nil {
		s.Logger.Error("model output failed schema validation",
			zap.String("task", string(task)), zap.Error(err), zap.String("raw", raw))
		return nil, "", &domain.ParseError{Raw: raw, Err: err}
	}
	return rec, clean, nil
}

// uploadMedia pushes the meal photo to blob storage under a
// collision-resistant key. Upload failure is best-effort enrichment: log it,
// return an empty URL and keep going.
func (s *Service) uploadMedia(ctx context.Context, filename, contentType string, data []byte) (string, bool) {
	name := path.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == "/" {
		name = "upload"
	}
	key := fmt.Sprintf("foodlogs/%d_%s", s.Clock.Now().UnixNano(), name)

	url, err := s.Media.UploadBytes(ctx, key, contentType, data)
	if err != nil {
		s.Logger.Error("media upload failed; continuing without photo",
			zap.Error(err), zap.String("key", key))
		return "", true
	}
	return url, false
}

// persistLog inserts the food log. Insert failure is logged and degrades the
// result; the analysis itself already succeeded and is still returned.
func (s *Service) persistLog(ctx context.Context, l *foodlog.FoodLog) (string, bool) {
	if err := s.Logs.Save(ctx, l); err != nil {
		s.Logger.Error("food log insert failed; returning analysis without id",
			zap.Error(err), zap.String("user_id", l.UserID))
		return "", true
	}
	return string(l.ID), false
}

//
// ==== USE CASES ====
//

type AnalyzeMealCommand struct {
	UserID    string // empty = guest; analysis runs, nothing is persisted
	Text      string
	Image     []byte
	ImageMIME string
	Filename  string
	Demo      bool
}

// MealResult is the pipeline outcome for a meal analysis. Degraded marks
// results whose persistence partially failed (photo upload or row insert).
type MealResult struct {
	domain.MealAnalysis
	ID       string `json:"id,omitempty"`
	ImageURL string `json:"image_url"`
	Degraded bool   `json:"degraded,omitempty"`
}

func (s *Service) AnalyzeMeal(ctx context.Context, cmd AnalyzeMealCommand) (*MealResult, error) {
	hasImage := len(cmd.Image) > 0
	if !hasImage && strings.TrimSpace(cmd.Text) == "" {
		return nil, &domain.ValidationError{Msg: "either an image or a text description is required"}
	}

	client := s.Text
	var media *domai.Media
	if hasImage {
		client = s.Vision
		media = &domai.Media{MIME: cmd.ImageMIME, Data: cmd.Image}
	}

	if s.mocked(cmd.Demo, client) {
		return &MealResult{MealAnalysis: *mockMealAnalysis()}, nil
	}

	rec, raw, err := generate(ctx, s, domain.TaskMealAnalysis, client, prompt.MealAnalysis(cmd.Text), media, domain.DecodeMealAnalysis)
	if err != nil {
		return nil, err
	}

	res := &MealResult{MealAnalysis: *rec}
	if cmd.UserID == "" {
		return res, nil
	}

	if hasImage {
		url, degraded := s.uploadMedia(ctx, cmd.Filename, cmd.ImageMIME, cmd.Image)
		res.ImageURL = url
		res.Degraded = degraded
	}

	id, degraded := s.persistLog(ctx, &foodlog.FoodLog{
		ID:            foodlog.LogID(uuid.New().String()),
		UserID:        cmd.UserID,
		Source:        foodlog.SourcePhoto,
		ImageURL:      res.ImageURL,
		Ingredients:   rec.Ingredients,
		TotalCalories: rec.TotalCalories,
		TotalCarbs:    rec.TotalCarbs,
		TotalProtein:  rec.TotalProtein,
		TotalFat:      rec.TotalFat,
		TotalFiber:    rec.TotalFiber,
		TotalSugar:    rec.TotalSugar,
		HealthScore:   rec.HealthScore,
		GlycemicLoad:  rec.GlycemicLoad,
		Warnings:      rec.Warnings,
		RawResult:     raw,
		CreatedAt:     s.Clock.Now(),
	})
	res.ID = id
	res.Degraded = res.Degraded || degraded
	return res, nil
}

type VoiceLogCommand struct {
	UserID string
	Text   string
	Demo   bool
}

// VoiceLogResult is the pipeline outcome for a voice food log. Voice entries
// never carry a photo, so image_url is always null.
type VoiceLogResult struct {
	domain.VoiceFoodLog
	ID       string  `json:"id,omitempty"`
	ImageURL *string `json:"image_url"`
	Degraded bool    `json:"degraded,omitempty"`
}

func (s *Service) LogVoice(ctx context.Context, cmd VoiceLogCommand) (*VoiceLogResult, error) {
	if strings.TrimSpace(cmd.Text) == "" {
		return nil, &domain.ValidationError{Msg: "a food description is required"}
	}

	if s.mocked(cmd.Demo, s.Text) {
		return &VoiceLogResult{VoiceFoodLog: *mockVoiceFoodLog()}, nil
	}

	rec, raw, err := generate(ctx, s, domain.TaskVoiceFoodLog, s.Text, prompt.VoiceFoodLog(cmd.Text), nil, domain.DecodeVoiceFoodLog)
	if err != nil {
		return nil, err
	}

	res := &VoiceLogResult{VoiceFoodLog: *rec}
	if cmd.UserID == "" {
		return res, nil
	}

	items := make([]domain.MealItem, 0, len(rec.Ingredients))
	for _, name := range rec.Ingredients {
		items = append(items, domain.MealItem{Name: name})
	}
	id, degraded := s.persistLog(ctx, &foodlog.FoodLog{
		ID:            foodlog.LogID(uuid.New().String()),
		UserID:        cmd.UserID,
		Source:        foodlog.SourceVoice,
		FoodName:      rec.FoodName,
		Ingredients:   items,
		TotalCalories: rec.TotalCalories,
		TotalCarbs:    rec.TotalCarbs,
		TotalProtein:  rec.TotalProtein,
		TotalFat:      rec.TotalFat,
		HealthScore:   rec.HealthScore,
		GlycemicLoad:  rec.GlycemicLoad,
		Warnings:      rec.Warnings,
		RawResult:     raw,
		CreatedAt:     s.Clock.Now(),
	})
	res.ID = id
	res.Degraded = degraded
	return res, nil
}

type SuggestRecipeCommand struct {
	Ingredients []string
	Demo        bool
}

func (s *Service) SuggestRecipe(ctx context.Context, cmd SuggestRecipeCommand) (*domain.Recipe, error) {
	if len(cmd.Ingredients) == 0 {
		return nil, &domain.ValidationError{Msg: "a non-empty ingredient list is required"}
	}

	if s.mocked(cmd.Demo, s.Text) {
		return mockRecipe(), nil
	}

	rec, _, err := generate(ctx, s, domain.TaskRecipeSuggestion, s.Text, prompt.RecipeSuggestion(cmd.Ingredients), nil, domain.DecodeRecipe)
	return rec, err
}

type PlanDietCommand struct {
	Profile domain.Profile
	Demo    bool
}

func (s *Service) PlanDiet(ctx context.Context, cmd PlanDietCommand) (*domain.DietPlan, error) {
	if cmd.Profile == (domain.Profile{}) {
		return nil, &domain.ValidationError{Msg: "profile data is required"}
	}

	if s.mocked(cmd.Demo, s.Text) {
		return mockDietPlan(), nil
	}

	plan, _, err := generate(ctx, s, domain.TaskDietPlan, s.Text, prompt.DietPlan(cmd.Profile), nil, domain.DecodeDietPlan)
	return plan, err
}

type ScanMenuCommand struct {
	MenuText string
	Goals    domain.Profile
	Demo     bool
}

func (s *Service) ScanMenu(ctx context.Context, cmd ScanMenuCommand) (*domain.MenuScan, error) {
	if strings.TrimSpace(cmd.MenuText) == "" {
		return nil, &domain.ValidationError{Msg: "menu text is required"}
	}

	if s.mocked(cmd.Demo, s.Text) {
		return mockMenuScan(), nil
	}

	scan, _, err := generate(ctx, s, domain.TaskMenuScan, s.Text, prompt.MenuScan(cmd.MenuText, cmd.Goals), nil, domain.DecodeMenuScan)
	return scan, err
}

type PlanWeekCommand struct {
	Profile domain.Profile
	Demo    bool
}

func (s *Service) PlanWeek(ctx context.Context, cmd PlanWeekCommand) (*domain.WeeklyMealPlan, error) {
	if s.mocked(cmd.Demo, s.Text) {
		return mockWeeklyMealPlan(), nil
	}

	plan, _, err := generate(ctx, s, domain.TaskWeeklyMealPlan, s.Text, prompt.WeeklyMealPlan(cmd.Profile), nil, domain.DecodeWeeklyMealPlan)
	return plan, err
}

type VoiceCommandCommand struct {
	Transcript string
	Demo       bool
}

func (s *Service) RouteVoiceCommand(ctx context.Context, cmd VoiceCommandCommand) (*domain.VoiceCommand, error) {
	if strings.TrimSpace(cmd.Transcript) == "" {
		return nil, &domain.ValidationError{Msg: "a transcript is required"}
	}

	if s.mocked(cmd.Demo, s.Text) {
		return mockVoiceCommand(), nil
	}

	vc, _, err := generate(ctx, s, domain.TaskVoiceCommand, s.Text, prompt.VoiceCommand(cmd.Transcript), nil, domain.DecodeVoiceCommand)
	return vc, err
}

type ChatCommand struct {
	Message string
	History []domain.ChatMessage
	Profile *domain.Profile
	Demo    bool
}

// Chat is the one task whose model answer is plain text; it skips the JSON
// ladder entirely.
func (s *Service) Chat(ctx context.Context, cmd ChatCommand) (string, error) {
	if strings.TrimSpace(cmd.Message) == "" {
		return "", &domain.ValidationError{Msg: "a message is required"}
	}

	if s.mocked(cmd.Demo, s.Text) {
		return mockChatReply, nil
	}

	reply, err := s.Text.Generate(ctx, prompt.Chat(cmd.Message, cmd.History, cmd.Profile), nil)
	if err != nil {
		return "", &domain.ModelError{Err: err}
	}
	return strings.TrimSpace(reply), nil
}

//
// ==== CRUD over persisted records ====
//

type SaveRecipeCommand struct {
	UserID      string
	Recipe      domain.Recipe
	MealType    string
	PlannedDate string
}

func (s *Service) SaveRecipe(ctx context.Context, cmd SaveRecipeCommand) (*recipe.SavedRecipe, error) {
	if cmd.UserID == "" {
		return nil, &domain.ValidationError{Msg: "authentication required to save recipes"}
	}
	if strings.TrimSpace(cmd.Recipe.Name) == "" {
		return nil, &domain.ValidationError{Msg: "recipe data is required"}
	}

	mealType := cmd.MealType
	if mealType == "" {
		mealType = "Snack"
	}
	plannedDate := cmd.PlannedDate
	if plannedDate == "" {
		plannedDate = s.Clock.Now().Format("2006-01-02")
	}
	cookTime := cmd.Recipe.Time
	if cookTime == "" {
		cookTime = "30 mins"
	}

	saved := &recipe.SavedRecipe{
		ID:           recipe.RecipeID(uuid.New().String()),
		UserID:       cmd.UserID,
		Name:         cmd.Recipe.Name,
		Description:  cmd.Recipe.Description,
		Time:         cookTime,
		Calories:     cmd.Recipe.Calories,
		Ingredients:  cmd.Recipe.Ingredients,
		Instructions: cmd.Recipe.Instructions,
		MealType:     mealType,
		PlannedDate:  plannedDate,
		CreatedAt:    s.Clock.Now(),
	}
	if err := s.Recipes.Save(ctx, saved); err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *Service) ListRecipes(ctx context.Context, userID string) ([]*recipe.SavedRecipe, error) {
	if userID == "" {
		return nil, &domain.ValidationError{Msg: "authentication required to list recipes"}
	}
	return s.Recipes.ListByUser(ctx, userID)
}

// LatestLogs returns the user's most recent food logs.
func (s *Service) LatestLogs(ctx context.Context, userID string, limit int) ([]*foodlog.FoodLog, error) {
	return s.Logs.Latest(ctx, userID, limit)
}

// GetLog returns one food log by id.
func (s *Service) GetLog(ctx context.Context, userID string, id foodlog.LogID) (*foodlog.FoodLog, error) {
	return s.Logs.Get(ctx, userID, id)
}

// Summary aggregates the user's logs over the last N days.
func (s *Service) Summary(ctx context.Context, userID string, sinceDays int) (*foodlog.Summary, error) {
	return s.Logs.Summary(ctx, userID, sinceDays)
}
