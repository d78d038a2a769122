package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/house-price-api/internal/auth"
	"github.com/iliyamo/house-price-api/internal/config"
	"github.com/iliyamo/house-price-api/internal/database"
	"github.com/iliyamo/house-price-api/internal/handler"
	"github.com/iliyamo/house-price-api/internal/inference"
	"github.com/iliyamo/house-price-api/internal/middleware"
	"github.com/iliyamo/house-price-api/internal/queue"
	"github.com/iliyamo/house-price-api/internal/repository"
	"github.com/iliyamo/house-price-api/internal/router"
	queuepublisher "github.com/iliyamo/house-price-api/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	artifact, err := inference.Load(cfg.ModelPath)
	if err != nil {
		log.Fatalf("model: %v", err)
	}
	log.Printf("model loaded: %s (%d features)", artifact.ModelType, len(artifact.FeatureNames))

	// Session state: two disjoint in-memory registries, gone on restart.
	userTokens := auth.NewRegistry()
	adminTokens := auth.NewRegistry()

	users := repository.NewUserRepo(db)
	admins := repository.NewAdminRepo(db)
	predictions := repository.NewPredictionRepo(db)

	predict := handler.NewPredictHandler(artifact, predictions)
	if cfg.EventsEnabled {
		predict.Publish = func(ctx context.Context, ev queue.PredictionCreatedEvent) {
			go func() { _ = queuepublisher.PublishPredictionCreated(ctx, ev) }()
		}
		go func() {
			if err := queue.StartPredictionConsumer(); err != nil {
				log.Printf("prediction-consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), config.NewRedisClient()))

	router.Register(e, router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, users, userTokens),
		AdminAuth: handler.NewAdminAuthHandler(admins, adminTokens),
		Predict:   predict,
		History:   handler.NewHistoryHandler(predictions),
		Admin:     handler.NewAdminHandler(users, predictions),
		ModelInfo: handler.NewModelInfoHandler(artifact, predictions),
	}, userTokens, adminTokens)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
