package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hanchanwook/lms-eval-api/internal/dto"
	"github.com/hanchanwook/lms-eval-api/internal/evaluation"
	"github.com/hanchanwook/lms-eval-api/internal/service"
	"github.com/hanchanwook/lms-eval-api/internal/utils"
)

// ResponseHandler wires student-facing submission routes.
type ResponseHandler struct {
	service service.ResponseService
	logger  zerolog.Logger
}

// NewResponseHandler constructs the handler.
func NewResponseHandler(service service.ResponseService, logger zerolog.Logger) *ResponseHandler {
	return &ResponseHandler{
		service: service,
		logger:  logger.With().Str("component", "response_handler").Logger(),
	}
}

// Register attaches submission endpoints to the router group.
func (h *ResponseHandler) Register(router fiber.Router) {
	router.Get("/:id/status", h.status)
	router.Post("/:id/responses", h.submit)
}

func (h *ResponseHandler) status(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	status, err := h.service.ViewerStatus(c.Context(), id, userIDFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "template not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "template status retrieved", status)
}

func (h *ResponseHandler) submit(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.SubmitResponseRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Submit(c.Context(), id, actorFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "response submitted", result)
}

func (h *ResponseHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrTemplateNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "template not found")
	case errors.Is(err, service.ErrTemplateNotOpen):
		return utils.SendError(c, fiber.StatusConflict, "template is not open for responses")
	case errors.Is(err, service.ErrAlreadyResponded):
		return utils.SendError(c, fiber.StatusConflict, "response already submitted")
	case errors.Is(err, evaluation.ErrUnknownQuestion),
		errors.Is(err, evaluation.ErrRatingOutOfRange),
		errors.Is(err, evaluation.ErrKindMismatch),
		errors.Is(err, evaluation.ErrDuplicateAnswer):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		return h.internalError(c, err)
	}
}

func (h *ResponseHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
