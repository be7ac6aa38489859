package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hanchanwook/lms-eval-api/internal/service"
	"github.com/hanchanwook/lms-eval-api/internal/utils"
)

// EvaluationHandler wires the derived evaluation views: course summaries and
// per-template statistics.
type EvaluationHandler struct {
	service service.EvaluationService
	logger  zerolog.Logger
}

// NewEvaluationHandler constructs the handler.
func NewEvaluationHandler(service service.EvaluationService, logger zerolog.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		service: service,
		logger:  logger.With().Str("component", "evaluation_handler").Logger(),
	}
}

// Register attaches evaluation endpoints to the router group.
func (h *EvaluationHandler) Register(router fiber.Router) {
	router.Get("/summary", h.summary)
	router.Get("/templates/:id/stats", h.stats)
}

func (h *EvaluationHandler) summary(c *fiber.Ctx) error {
	summary, err := h.service.CourseSummaries(c.Context(), userIDFromContext(c))
	if err != nil {
		return h.internalError(c, err)
	}

	c.Set("X-Cache-Hit", strconv.FormatBool(summary.CacheHit))

	return utils.SendSuccess(c, "course summaries retrieved", summary)
}

func (h *EvaluationHandler) stats(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	stats, err := h.service.TemplateStats(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "template not found")
		}
		return h.internalError(c, err)
	}

	c.Set("X-Cache-Hit", strconv.FormatBool(stats.CacheHit))

	return utils.SendSuccess(c, "template statistics retrieved", stats)
}

func (h *EvaluationHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
