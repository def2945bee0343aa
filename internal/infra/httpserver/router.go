package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	appanalysis "github.com/bryanwahyu/platex-api/internal/application/analysis"
	domai "github.com/bryanwahyu/platex-api/internal/domain/ai"
	domain "github.com/bryanwahyu/platex-api/internal/domain/analysis"
	"github.com/bryanwahyu/platex-api/internal/domain/foodlog"
	"github.com/bryanwahyu/platex-api/internal/infra/openfoodfacts"
	"github.com/bryanwahyu/platex-api/internal/middleware"
)

// maxUploadBytes caps meal photo uploads.
const maxUploadBytes = 10 << 20

type Router struct {
	svc     *appanalysis.Service
	barcode *openfoodfacts.Client
	logger  *zap.Logger
}

func NewRouter(svc *appanalysis.Service, barcode *openfoodfacts.Client, logger *zap.Logger) http.Handler {
	rt := &Router{svc: svc, barcode: barcode, logger: logger}
	mux := chi.NewRouter()

	mux.Route("/v1", func(r chi.Router) {
		r.Post("/analyze", rt.wrap(rt.handleAnalyze))
		r.Post("/voice/log", rt.wrap(rt.handleVoiceLog))
		r.Post("/voice/command", rt.wrap(rt.handleVoiceCommand))
		r.Post("/recipes/suggest", rt.wrap(rt.handleSuggestRecipe))
		r.Post("/planner", rt.wrap(rt.handlePlanner))
		r.Post("/planner/weekly", rt.wrap(rt.handleWeeklyPlan))
		r.Post("/menu/scan", rt.wrap(rt.handleMenuScan))
		r.Post("/chat", rt.wrap(rt.handleChat))

		r.Post("/recipes", rt.wrap(rt.handleSaveRecipe))
		r.Get("/recipes", rt.wrap(rt.handleListRecipes))
		r.Get("/logs/latest", rt.wrap(rt.handleLatestLogs))
		r.Get("/logs/{id}", rt.wrap(rt.handleGetLog))
		r.Get("/summary", rt.wrap(rt.handleSummary))
		r.Get("/barcode", rt.wrap(rt.handleBarcode))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (rt *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			rt.respondError(w, req, err)
		}
	}
}

// respondError maps the error taxonomy to stable codes. Raw model text and
// backend messages stay in the logs; clients get a generic message.
func (rt *Router) respondError(w http.ResponseWriter, req *http.Request, err error) {
	var (
		ve *domain.ValidationError
		pe *domain.ParseError
		me *domain.ModelError
	)
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation_error", Message: ve.Msg})
	case errors.As(err, &pe):
		middleware.IncrementAnalysesFailed()
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:   "parse_error",
			Message: "the analysis response could not be understood, please try again",
		})
	case errors.Is(err, domai.ErrQuotaExceeded):
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "quota_exceeded", Message: "ai quota exceeded, please try again later"})
	case errors.As(err, &me):
		middleware.IncrementAnalysesFailed()
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "model_error", Message: "analysis failed, please try again"})
	case errors.Is(err, sql.ErrNoRows), errors.Is(err, openfoodfacts.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: "not found"})
	default:
		rt.logger.Error("request failed", zap.String("path", req.URL.Path), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// POST /v1/analyze
// multipart form: image (optional file), text (optional), is_demo
func (rt *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		return &domain.ValidationError{Msg: "invalid multipart form"}
	}

	cmd := appanalysis.AnalyzeMealCommand{
		UserID: middleware.GetUserFromContext(req.Context()),
		Text:   req.FormValue("text"),
		Demo:   req.FormValue("is_demo") == "true",
	}

	if file, hdr, err := req.FormFile("image"); err == nil {
		defer file.Close()
		contentType := hdr.Header.Get("Content-Type")
		if verr := middleware.ValidateImageType(contentType); verr != nil {
			return &domain.ValidationError{Msg: verr.Error()}
		}
		data, rerr := io.ReadAll(file)
		if rerr != nil {
			return rerr
		}
		cmd.Image = data
		cmd.ImageMIME = contentType
		cmd.Filename = hdr.Filename
	}

	res, err := rt.svc.AnalyzeMeal(req.Context(), cmd)
	if err != nil {
		return err
	}
	middleware.IncrementAnalyses()
	if res.Degraded {
		middleware.IncrementAnalysesDegraded()
	}
	writeJSON(w, http.StatusOK, res)
	return nil
}

// POST /v1/voice/log
func (rt *Router) handleVoiceLog(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Text string `json:"text"`
		Demo bool   `json:"is_demo"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return &domain.ValidationError{Msg: "invalid request body"}
	}

	res, err := rt.svc.LogVoice(req.Context(), appanalysis.VoiceLogCommand{
		UserID: middleware.GetUserFromContext(req.Context()),
		Text:   body.Text,
		Demo:   body.Demo,
	})
	if err != nil {
		return err
	}
	middleware.IncrementAnalyses()
	if res.Degraded {
		middleware.IncrementAnalysesDegraded()
	}
	writeJSON(w, http.StatusOK, res)
	return nil
}

// POST /v1/voice/command
func (rt *Router) handleVoiceCommand(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Transcript string `json:"transcript"`
		Demo       bool   `json:"is_demo"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return &domain.ValidationError{Msg: "invalid request body"}
	}

	res, err := rt.svc.RouteVoiceCommand(req.Context(), appanalysis.VoiceCommandCommand{
		Transcript: body.Transcript,
		Demo:       body.Demo,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, res)
	return nil
}

// POST /v1/recipes/suggest
func (rt *Router) handleSuggestRecipe(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Ingredients []string `json:"ingredients"`
		Demo        bool     `json:"is_demo"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return &domain.ValidationError{Msg: "invalid request body"}
	}

	rec, err := rt.svc.SuggestRecipe(req.Context(), appanalysis.SuggestRecipeCommand{
		Ingredients: body.Ingredients,
		Demo:        body.Demo,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{"recipe": rec})
	return nil
}

// POST /v1/planner
func (rt *Router) handlePlanner(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Profile domain.Profile `json:"profile"`
		Demo    bool           `json:"is_demo"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return &domain.ValidationError{Msg: "invalid request body"}
	}

	plan, err := rt.svc.PlanDiet(req.Context(), appanalysis.PlanDietCommand{
		Profile: body.Profile,
		Demo:    body.Demo,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, plan)
	return nil
}

// POST /v1/planner/weekly
func (rt *Router) handleWeeklyPlan(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Profile domain.Profile `json:"profile"`
		Demo    bool           `json:"is_demo"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return &domain.ValidationError{Msg: "invalid request body"}
	}

	plan, err := rt.svc.PlanWeek(req.Context(), appanalysis.PlanWeekCommand{
		Profile: body.Profile,
		Demo:    body.Demo,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, plan)
	return nil
}

// POST /v1/menu/scan
func (rt *Router) handleMenuScan(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		MenuText string         `json:"menu_text"`
		Goals    domain.Profile `json:"goals"`
		Demo     bool           `json:"is_demo"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return &domain.ValidationError{Msg: "invalid request body"}
	}

	scan, err := rt.svc.ScanMenu(req.Context(), appanalysis.ScanMenuCommand{
		MenuText: body.MenuText,
		Goals:    body.Goals,
		Demo:     body.Demo,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, scan)
	return nil
}

// POST /v1/chat
func (rt *Router) handleChat(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Message string               `json:"message"`
		History []domain.ChatMessage `json:"history"`
		Profile *domain.Profile      `json:"profile"`
		Demo    bool                 `json:"is_demo"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return &domain.ValidationError{Msg: "invalid request body"}
	}

	reply, err := rt.svc.Chat(req.Context(), appanalysis.ChatCommand{
		Message: body.Message,
		History: body.History,
		Profile: body.Profile,
		Demo:    body.Demo,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
	return nil
}

// POST /v1/recipes
func (rt *Router) handleSaveRecipe(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Recipe   domain.Recipe `json:"recipe"`
		MealType string        `json:"meal_type"`
		Date     string        `json:"date"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return &domain.ValidationError{Msg: "invalid request body"}
	}

	saved, err := rt.svc.SaveRecipe(req.Context(), appanalysis.SaveRecipeCommand{
		UserID:      middleware.GetUserFromContext(req.Context()),
		Recipe:      body.Recipe,
		MealType:    body.MealType,
		PlannedDate: body.Date,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "recipe": saved})
	return nil
}

// GET /v1/recipes
func (rt *Router) handleListRecipes(w http.ResponseWriter, req *http.Request) error {
	list, err := rt.svc.ListRecipes(req.Context(), middleware.GetUserFromContext(req.Context()))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{"recipes": list})
	return nil
}

// GET /v1/logs/latest?limit=20
func (rt *Router) handleLatestLogs(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	limit = middleware.ValidateLimit(limit)

	list, err := rt.svc.LatestLogs(req.Context(), middleware.GetUserFromContext(req.Context()), limit)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, list)
	return nil
}

// GET /v1/logs/{id}
func (rt *Router) handleGetLog(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")

	l, err := rt.svc.GetLog(req.Context(), middleware.GetUserFromContext(req.Context()), foodlog.LogID(id))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, l)
	return nil
}

// GET /v1/summary?days=7
func (rt *Router) handleSummary(w http.ResponseWriter, req *http.Request) error {
	days, _ := strconv.Atoi(req.URL.Query().Get("days"))
	days = middleware.ValidateDays(days)

	summary, err := rt.svc.Summary(req.Context(), middleware.GetUserFromContext(req.Context()), days)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, summary)
	return nil
}

// GET /v1/barcode?code=...
func (rt *Router) handleBarcode(w http.ResponseWriter, req *http.Request) error {
	code := req.URL.Query().Get("code")
	if code == "" {
		return &domain.ValidationError{Msg: "barcode code is required"}
	}

	product, err := rt.barcode.Lookup(req.Context(), code)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, product)
	return nil
}
