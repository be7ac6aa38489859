package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hanchanwook/lms-eval-api/internal/config"
	"github.com/hanchanwook/lms-eval-api/internal/handler"
	"github.com/hanchanwook/lms-eval-api/internal/middleware"
	"github.com/hanchanwook/lms-eval-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	TemplateHandler   *handler.TemplateHandler
	ResponseHandler   *handler.ResponseHandler
	EvaluationHandler *handler.EvaluationHandler
	ActivityHandler   *handler.ActivityHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	evaluation := api.Group("/evaluation", jwtMiddleware)

	// Template management and per-template statistics are staff surfaces;
	// the staff check is mounted on the /templates prefix so both fall under it.
	staffOnly := middleware.RequireRole("admin", "teacher", "staff")
	templates := evaluation.Group("/templates", staffOnly)
	if deps.TemplateHandler != nil {
		deps.TemplateHandler.Register(templates)
	}
	if deps.EvaluationHandler != nil {
		deps.EvaluationHandler.Register(evaluation)
	}
	if deps.ActivityHandler != nil {
		deps.ActivityHandler.Register(evaluation.Group("/activity", middleware.RequireRole("admin")))
	}

	// Students view and answer surveys under their own prefix.
	if deps.ResponseHandler != nil {
		deps.ResponseHandler.Register(evaluation.Group("/surveys"))
	}
}
