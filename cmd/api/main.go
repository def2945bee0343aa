package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/bryanwahyu/platex-api/internal/application"
	appanalysis "github.com/bryanwahyu/platex-api/internal/application/analysis"
	"github.com/bryanwahyu/platex-api/internal/config"
	domai "github.com/bryanwahyu/platex-api/internal/domain/ai"
	"github.com/bryanwahyu/platex-api/internal/domain/foodlog"
	"github.com/bryanwahyu/platex-api/internal/domain/recipe"
	"github.com/bryanwahyu/platex-api/internal/infra/ai/gemini"
	"github.com/bryanwahyu/platex-api/internal/infra/ai/groq"
	mysqlp "github.com/bryanwahyu/platex-api/internal/infra/db/mysql"
	postgresp "github.com/bryanwahyu/platex-api/internal/infra/db/postgres"
	"github.com/bryanwahyu/platex-api/internal/infra/httpserver"
	"github.com/bryanwahyu/platex-api/internal/infra/openfoodfacts"
	minioStore "github.com/bryanwahyu/platex-api/internal/infra/storage"
	"github.com/bryanwahyu/platex-api/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// connect database (mysql atau postgres)
	var (
		db      *sql.DB
		logs    foodlog.Repository
		recipes recipe.Repository
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			logger.Fatal("postgres connect error", zap.Error(err))
		}
		logs = postgresp.NewFoodLogRepository(db)
		recipes = postgresp.NewRecipeRepository(db)
	case "mysql":
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			logger.Fatal("mysql connect error", zap.Error(err))
		}
		logs = mysqlp.NewFoodLogRepository(db)
		recipes = mysqlp.NewRecipeRepository(db)
	default:
		logger.Fatal("unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	defer db.Close()

	// init minio
	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		logger.Fatal("minio init error", zap.Error(err))
	}

	// init AI backends; tanpa API key pakai mock
	var vision, text domai.Client
	if cfg.AI.GeminiAPIKey != "" {
		vision = gemini.NewClient(cfg.AI.GeminiAPIKey, cfg.AI.VisionModel)
	}
	if cfg.AI.GroqAPIKey != "" {
		text = groq.NewClient(cfg.AI.GroqAPIKey, cfg.AI.TextModel)
	}
	if vision == nil || text == nil {
		logger.Warn("running with canned analysis responses",
			zap.Bool("vision_configured", vision != nil),
			zap.Bool("text_configured", text != nil))
	}

	// init service
	svc := &appanalysis.Service{
		Vision:  vision,
		Text:    text,
		Logs:    logs,
		Recipes: recipes,
		Media:   store,
		Clock:   application.SystemClock{},
		Logger:  logger,
		Demo:    cfg.AI.Demo,
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	mux.Use(middleware.LoggingMiddleware(logger))
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))
	mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate))

	mux.Get("/health", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
		"storage":  middleware.CheckerFunc(store.Ping),
	}))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Mount("/", httpserver.NewRouter(svc, openfoodfacts.NewClient(), logger))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		logger.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
