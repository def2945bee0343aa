package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domai "github.com/bryanwahyu/platex-api/internal/domain/ai"
	domain "github.com/bryanwahyu/platex-api/internal/domain/analysis"
	"github.com/bryanwahyu/platex-api/internal/domain/foodlog"
	"github.com/bryanwahyu/platex-api/internal/domain/recipe"
)

//
// ==== fakes ====
//

type fakeClient struct {
	resp  string
	err   error
	calls int

	lastPrompt domai.Prompt
	lastMedia  *domai.Media
}

func (f *fakeClient) Generate(_ context.Context, p domai.Prompt, media *domai.Media) (string, error) {
	f.calls++
	f.lastPrompt = p
	f.lastMedia = media
	if f.err != nil {
		return "", f.err
	}
	return f.resp, nil
}

type fakeLogRepo struct {
	saveErr error
	saved   []*foodlog.FoodLog
}

func (f *fakeLogRepo) Save(_ context.Context, l *foodlog.FoodLog) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, l)
	return nil
}

func (f *fakeLogRepo) Get(context.Context, string, foodlog.LogID) (*foodlog.FoodLog, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeLogRepo) Latest(context.Context, string, int) ([]*foodlog.FoodLog, error) {
	return nil, nil
}

func (f *fakeLogRepo) Summary(context.Context, string, int) (*foodlog.Summary, error) {
	return &foodlog.Summary{}, nil
}

type fakeRecipeRepo struct {
	saved []*recipe.SavedRecipe
}

func (f *fakeRecipeRepo) Save(_ context.Context, r *recipe.SavedRecipe) error {
	f.saved = append(f.saved, r)
	return nil
}

func (f *fakeRecipeRepo) ListByUser(context.Context, string) ([]*recipe.SavedRecipe, error) {
	return f.saved, nil
}

type fakeMediaStore struct {
	err     error
	uploads int
}

func (f *fakeMediaStore) UploadBytes(_ context.Context, key, _ string, _ []byte) (string, error) {
	f.uploads++
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.example.com/" + key, nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newTestService(vision, text *fakeClient) (*Service, *fakeLogRepo, *fakeMediaStore) {
	logs := &fakeLogRepo{}
	media := &fakeMediaStore{}
	svc := &Service{
		Logs:    logs,
		Recipes: &fakeRecipeRepo{},
		Media:   media,
		Clock:   fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		Logger:  zap.NewNop(),
	}
	if vision != nil {
		svc.Vision = vision
	}
	if text != nil {
		svc.Text = text
	}
	return svc, logs, media
}

const validMealJSON = `{
	"ingredients": [
		{"name": "rice", "calories": 200, "carbs": 45, "protein": 4, "fat": 1}
	],
	"total_calories": 210,
	"total_carbs": 45,
	"total_protein": 4,
	"total_fat": 1,
	"total_fiber": 0,
	"total_sugar": 0,
	"health_score": 70,
	"glycemic_load": "Medium",
	"warnings": []
}`

//
// ==== demo gate ====
//

func TestDemoGate(t *testing.T) {
	t.Run("NilClientReturnsCannedResultWithoutPersistence", func(t *testing.T) {
		svc, logs, media := newTestService(nil, nil)

		res, err := svc.AnalyzeMeal(context.Background(), AnalyzeMealCommand{
			UserID: "user-1",
			Text:   "chicken and rice",
		})
		require.NoError(t, err)

		assert.True(t, res.IsMock)
		assert.Empty(t, res.ID)
		assert.Empty(t, logs.saved)
		assert.Zero(t, media.uploads)
	})

	t.Run("DemoFlagSkipsConfiguredBackend", func(t *testing.T) {
		text := &fakeClient{resp: validMealJSON}
		svc, logs, _ := newTestService(nil, text)

		res, err := svc.AnalyzeMeal(context.Background(), AnalyzeMealCommand{
			UserID: "user-1",
			Text:   "chicken and rice",
			Demo:   true,
		})
		require.NoError(t, err)

		assert.True(t, res.IsMock)
		assert.Zero(t, text.calls)
		assert.Empty(t, logs.saved)
	})

	t.Run("ServerDemoModeWinsOverCredentials", func(t *testing.T) {
		text := &fakeClient{resp: validMealJSON}
		svc, _, _ := newTestService(nil, text)
		svc.Demo = true

		res, err := svc.SuggestRecipe(context.Background(), SuggestRecipeCommand{Ingredients: []string{"egg"}})
		require.NoError(t, err)
		assert.True(t, res.IsMock)
		assert.Zero(t, text.calls)
	})
}

//
// ==== sanitize / parse ladder ====
//

func TestGenerateLadder(t *testing.T) {
	t.Run("FencedResponseParses", func(t *testing.T) {
		text := &fakeClient{resp: "```json\n" + validMealJSON + "\n```"}
		svc, _, _ := newTestService(nil, text)

		res, err := svc.AnalyzeMeal(context.Background(), AnalyzeMealCommand{Text: "rice"})
		require.NoError(t, err)
		assert.Equal(t, 210.0, res.TotalCalories)
		assert.Equal(t, 1, text.calls)
	})

	t.Run("ProseWrappedResponseRecoversViaCleanup", func(t *testing.T) {
		text := &fakeClient{resp: "Sure! Here is your analysis:\n" + validMealJSON + "\nEnjoy your meal!"}
		svc, _, _ := newTestService(nil, text)

		res, err := svc.AnalyzeMeal(context.Background(), AnalyzeMealCommand{Text: "rice"})
		require.NoError(t, err)
		assert.Equal(t, "Medium", res.GlycemicLoad)
	})

	t.Run("GarbageResponseIsParseErrorAfterSingleCall", func(t *testing.T) {
		text := &fakeClient{resp: "I could not analyze that meal, sorry."}
		svc, _, _ := newTestService(nil, text)

		_, err := svc.AnalyzeMeal(context.Background(), AnalyzeMealCommand{Text: "rice"})

		var pe *domain.ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, text.resp, pe.Raw)
		assert.Equal(t, 1, text.calls, "a parse failure must never trigger a second model call")
	})

	t.Run("SchemaViolationIsParseError", func(t *testing.T) {
		text := &fakeClient{resp: `{"total_calories": 500}`}
		svc, _, _ := newTestService(nil, text)

		_, err := svc.AnalyzeMeal(context.Background(), AnalyzeMealCommand{Text: "rice"})

		var pe *domain.ParseError
		require.ErrorAs(t, err, &pe)
	})

	t.Run("BackendFailureIsModelError", func(t *testing.T) {
		text := &fakeClient{err: errors.New("connection refused")}
		svc, _, _ := newTestService(nil, text)

		_, err := svc.AnalyzeMeal(context.Background(), AnalyzeMealCommand{Text: "rice"})

		var me *domain.ModelError
		require.ErrorAs(t, err, &me)
	})
}

//
// ==== client selection ====
//

func TestClientSelection(t *testing.T) {
	t.Run("ImagePicksVisionBackend", func(t *testing.T) {
		vision := &fakeClient{resp: validMealJSON}
		text := &fakeClient{resp: validMealJSON}
		svc, _, _ := newTestService(vision, text)

		_, err := svc.AnalyzeMeal(context.Background(), AnalyzeMealCommand{
			Image:     []byte{0xFF, 0xD8},
			ImageMIME: "image/jpeg",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, vision.calls)
		assert.Zero(t, text.calls)
		require.NotNil(t, vision.lastMedia)
		assert.Equal(t, "image/jpeg", vision.lastMedia.MIME)
	})

	t.Run("TextOnlyPicksTextBackend", func(t *testing.T) {
		vision := &fakeClient{resp: validMealJSON}
		text := &fakeClient{resp: validMealJSON}
		svc, _, _ := newTestService(vision, text)

		_, err := svc.AnalyzeMeal(context.Background(), AnalyzeMealCommand{Text: "rice"})
		require.NoError(t, err)
		assert.Zero(t, vision.calls)
		assert.Equal(t, 1, text.calls)
		assert.Nil(t, text.lastMedia)
	})

	t.Run("NoImageAndNoTextIsValidationError", func(t *testing.T) {
		svc, _, _ := newTestService(&fakeClient{}, &fakeClient{})

		_, err := svc.AnalyzeMeal(context.Background(), AnalyzeMealCommand{Text: "   "})

		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
	})
}

//
// ==== best-effort persistence ====
//

func TestPersistence(t *testing.T) {
	t.Run("GuestSkipsUploadAndInsert", func(t *testing.T) {
		text := &fakeClient{resp: validMealJSON}
		svc, logs, media := newTestService(nil, text)

		res, err := svc.AnalyzeMeal(context.Background(), AnalyzeMealCommand{Text: "rice"})
		require.NoError(t, err)

		assert.Empty(t, res.ID)
		assert.False(t, res.Degraded)
		assert.Empty(t, logs.saved)
		assert.Zero(t, media.uploads)
	})

	t.Run("AuthenticatedUserGetsPersistedLog", func(t *testing.T) {
		vision := &fakeClient{resp: validMealJSON}
		svc, logs, _ := newTestService(vision, nil)

		res, err := svc.AnalyzeMeal(context.Background(), AnalyzeMealCommand{
			UserID:    "user-1",
			Image:     []byte{0xFF, 0xD8},
			ImageMIME: "image/jpeg",
			Filename:  "lunch.jpg",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, res.ID)
		assert.False(t, res.Degraded)
		assert.Contains(t, res.ImageURL, "lunch.jpg")
		require.Len(t, logs.saved, 1)
		assert.Equal(t, "user-1", logs.saved[0].UserID)
		assert.Equal(t, foodlog.SourcePhoto, logs.saved[0].Source)
		assert.NotEmpty(t, logs.saved[0].RawResult)
	})

	t.Run("UploadFailureDegradesButStillPersists", func(t *testing.T) {
		vision := &fakeClient{resp: validMealJSON}
		svc, logs, media := newTestService(vision, nil)
		media.err = errors.New("bucket unavailable")

		res, err := svc.AnalyzeMeal(context.Background(), AnalyzeMealCommand{
			UserID:    "user-1",
			Image:     []byte{0xFF, 0xD8},
			ImageMIME: "image/jpeg",
		})
		require.NoError(t, err)

		assert.True(t, res.Degraded)
		assert.Empty(t, res.ImageURL)
		assert.NotEmpty(t, res.ID, "insert still happens after a failed upload")
		require.Len(t, logs.saved, 1)
		assert.Empty(t, logs.saved[0].ImageURL)
	})

	t.Run("InsertFailureDegradesButAnalysisIsReturned", func(t *testing.T) {
		text := &fakeClient{resp: validMealJSON}
		svc, logs, _ := newTestService(nil, text)
		logs.saveErr = errors.New("deadlock")

		res, err := svc.AnalyzeMeal(context.Background(), AnalyzeMealCommand{
			UserID: "user-1",
			Text:   "rice",
		})
		require.NoError(t, err, "a persistence failure must not fail the analysis")

		assert.True(t, res.Degraded)
		assert.Empty(t, res.ID)
		assert.Equal(t, 210.0, res.TotalCalories)
	})

	t.Run("VoiceLogMapsIngredientNames", func(t *testing.T) {
		text := &fakeClient{resp: `{
			"food_name": "Eggs and Toast",
			"total_calories": 350,
			"ingredients": ["2 eggs", "toast"]
		}`}
		svc, logs, _ := newTestService(nil, text)

		res, err := svc.LogVoice(context.Background(), VoiceLogCommand{UserID: "user-1", Text: "I ate eggs and toast"})
		require.NoError(t, err)

		assert.Nil(t, res.ImageURL)
		require.Len(t, logs.saved, 1)
		assert.Equal(t, foodlog.SourceVoice, logs.saved[0].Source)
		require.Len(t, logs.saved[0].Ingredients, 2)
		assert.Equal(t, "2 eggs", logs.saved[0].Ingredients[0].Name)
	})
}

//
// ==== chat ====
//

func TestChat(t *testing.T) {
	t.Run("PlainTextReplyIsTrimmedNotParsed", func(t *testing.T) {
		text := &fakeClient{resp: "  Eat more vegetables! 🥦  \n"}
		svc, _, _ := newTestService(nil, text)

		reply, err := svc.Chat(context.Background(), ChatCommand{Message: "what should I eat?"})
		require.NoError(t, err)
		assert.Equal(t, "Eat more vegetables! 🥦", reply)
		assert.False(t, text.lastPrompt.JSON)
	})

	t.Run("EmptyMessageIsValidationError", func(t *testing.T) {
		svc, _, _ := newTestService(nil, &fakeClient{})

		_, err := svc.Chat(context.Background(), ChatCommand{Message: " "})

		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
	})
}

//
// ==== saved recipes ====
//

func TestSaveRecipe(t *testing.T) {
	t.Run("FillsDefaults", func(t *testing.T) {
		svc, _, _ := newTestService(nil, nil)
		repo := svc.Recipes.(*fakeRecipeRepo)

		saved, err := svc.SaveRecipe(context.Background(), SaveRecipeCommand{
			UserID: "user-1",
			Recipe: domain.Recipe{Name: "Omelette"},
		})
		require.NoError(t, err)

		assert.Equal(t, "Snack", saved.MealType)
		assert.Equal(t, "2025-06-01", saved.PlannedDate)
		assert.Equal(t, "30 mins", saved.Time)
		assert.Len(t, repo.saved, 1)
	})

	t.Run("RequiresAuthentication", func(t *testing.T) {
		svc, _, _ := newTestService(nil, nil)

		_, err := svc.SaveRecipe(context.Background(), SaveRecipeCommand{
			Recipe: domain.Recipe{Name: "Omelette"},
		})

		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
	})
}
