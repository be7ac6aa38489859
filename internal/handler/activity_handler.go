package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hanchanwook/lms-eval-api/internal/dto"
	"github.com/hanchanwook/lms-eval-api/internal/service"
	"github.com/hanchanwook/lms-eval-api/internal/utils"
)

// ActivityHandler exposes the audit trail to administrators.
type ActivityHandler struct {
	service service.ActivityService
	logger  zerolog.Logger
}

// NewActivityHandler constructs the handler.
func NewActivityHandler(service service.ActivityService, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		logger:  logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register attaches audit trail endpoints to the router group.
func (h *ActivityHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *ActivityHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page_size")
	}
	actorID, err := parseQueryInt(c, "actor_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid actor_id")
	}

	req := dto.ActivityListRequest{
		Page:       page,
		PageSize:   pageSize,
		Action:     c.Query("action"),
		EntityType: c.Query("entity_type"),
	}
	if actorID > 0 {
		req.ActorID = uint(actorID)
	}

	activities, err := h.service.List(c.Context(), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "activity retrieved", activities)
}
