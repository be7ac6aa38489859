package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hanchanwook/lms-eval-api/internal/config"
	"github.com/hanchanwook/lms-eval-api/internal/database"
	"github.com/hanchanwook/lms-eval-api/internal/handler"
	"github.com/hanchanwook/lms-eval-api/internal/middleware"
	"github.com/hanchanwook/lms-eval-api/internal/models"
	"github.com/hanchanwook/lms-eval-api/internal/repository"
	"github.com/hanchanwook/lms-eval-api/internal/router"
	"github.com/hanchanwook/lms-eval-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Course{}, &models.SurveyTemplate{}, &models.Question{}, &models.Answer{}, &models.ActivityLog{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	validate := validator.New(validator.WithRequiredStructEnabled())

	courseRepo := repository.NewCourseRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	activityService := service.NewActivityService(activityRepo, logger)
	templateService := service.NewTemplateService(templateRepo, courseRepo, validate, activityService, logger)
	responseService := service.NewResponseService(templateRepo, answerRepo, validate, activityService, logger)
	evaluationService := service.NewEvaluationService(courseRepo, templateRepo, answerRepo, redisClient, cfg.SummaryCacheTTL, logger)

	templateHandler := handler.NewTemplateHandler(templateService, logger)
	responseHandler := handler.NewResponseHandler(responseService, logger)
	evaluationHandler := handler.NewEvaluationHandler(evaluationService, logger)
	activityHandler := handler.NewActivityHandler(activityService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		TemplateHandler:   templateHandler,
		ResponseHandler:   responseHandler,
		EvaluationHandler: evaluationHandler,
		ActivityHandler:   activityHandler,
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
