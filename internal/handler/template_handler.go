package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hanchanwook/lms-eval-api/internal/dto"
	"github.com/hanchanwook/lms-eval-api/internal/evaluation"
	"github.com/hanchanwook/lms-eval-api/internal/repository"
	"github.com/hanchanwook/lms-eval-api/internal/service"
	"github.com/hanchanwook/lms-eval-api/internal/utils"
)

// TemplateHandler wires staff-facing survey template routes.
type TemplateHandler struct {
	service service.TemplateService
	logger  zerolog.Logger
}

// NewTemplateHandler constructs the handler.
func NewTemplateHandler(service service.TemplateService, logger zerolog.Logger) *TemplateHandler {
	return &TemplateHandler{
		service: service,
		logger:  logger.With().Str("component", "template_handler").Logger(),
	}
}

// Register attaches template endpoints to the router group.
func (h *TemplateHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *TemplateHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page_size")
	}

	filter := repository.TemplateFilter{
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
		Page:     page,
		PageSize: pageSize,
	}
	if courseID, err := parseQueryInt(c, "course_id"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course_id")
	} else if courseID > 0 {
		id := uint(courseID)
		filter.CourseID = &id
	}

	templates, err := h.service.List(c.Context(), filter)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "templates retrieved", templates)
}

func (h *TemplateHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	template, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "template not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "template retrieved", template)
}

func (h *TemplateHandler) create(c *fiber.Ctx) error {
	var payload dto.TemplateCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	template, err := h.service.Create(c.Context(), payload, actorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "template created", template)
}

func (h *TemplateHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.TemplateUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	template, err := h.service.Update(c.Context(), id, payload, actorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "template updated", template)
}

func (h *TemplateHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id, actorFromContext(c)); err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "template not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "template deleted", fiber.Map{"id": id})
}

func (h *TemplateHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrTemplateNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "template not found")
	case errors.Is(err, service.ErrCourseNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "course not found")
	case errors.Is(err, evaluation.ErrScheduleInverted),
		errors.Is(err, evaluation.ErrUnknownQuestionKind):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		return h.internalError(c, err)
	}
}

func (h *TemplateHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
