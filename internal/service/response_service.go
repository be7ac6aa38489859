package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/hanchanwook/lms-eval-api/internal/dto"
	"github.com/hanchanwook/lms-eval-api/internal/evaluation"
	"github.com/hanchanwook/lms-eval-api/internal/models"
	"github.com/hanchanwook/lms-eval-api/internal/repository"
)

// ErrAlreadyResponded indicates the responder already submitted for this template.
var ErrAlreadyResponded = errors.New("responder already submitted for this template")

// ErrTemplateNotOpen indicates the template's answer window is not active.
var ErrTemplateNotOpen = errors.New("template is not open for responses")

// ResponseService handles atomic survey submissions and per-viewer status.
type ResponseService interface {
	Submit(ctx context.Context, templateID uint, responder Actor, payload dto.SubmitResponseRequest) (dto.SubmitResponseResult, error)
	ViewerStatus(ctx context.Context, templateID, responderID uint) (dto.TemplateViewerStatus, error)
}

type responseService struct {
	templates repository.TemplateRepository
	answers   repository.AnswerRepository
	validator *validator.Validate
	activity  ActivityRecorder
	policy    *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewResponseService constructs the submission service. Free-text answers are
// stripped to plain text before they are stored.
func NewResponseService(templates repository.TemplateRepository, answers repository.AnswerRepository, validator *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) ResponseService {
	return &responseService{
		templates: templates,
		answers:   answers,
		validator: validator,
		activity:  activity,
		policy:    bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "response_service").Logger(),
		now:       time.Now,
	}
}

func (s *responseService) Submit(ctx context.Context, templateID uint, responder Actor, payload dto.SubmitResponseRequest) (dto.SubmitResponseResult, error) {
	tracer := otel.Tracer("github.com/hanchanwook/lms-eval-api/internal/service/response")
	ctx, span := tracer.Start(ctx, "response.submit")
	span.SetAttributes(
		attribute.Int64("response.template_id", int64(templateID)),
		attribute.Int64("response.responder_id", int64(responder.ID)),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.SubmitResponseResult{}, err
	}

	template, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "template_not_found")
			return dto.SubmitResponseResult{}, ErrTemplateNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "template_lookup_failed")
		return dto.SubmitResponseResult{}, err
	}

	submittedAt := s.now()
	status := evaluation.ResolveStatus(submittedAt, template.OpenDate, template.CloseDate, false)
	if !status.Open() {
		span.SetAttributes(attribute.String("response.template_status", string(status)))
		span.SetStatus(codes.Error, "template_not_open")
		return dto.SubmitResponseResult{}, ErrTemplateNotOpen
	}

	responded, err := s.answers.HasResponded(ctx, templateID, responder.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "responded_lookup_failed")
		return dto.SubmitResponseResult{}, err
	}
	if responded {
		span.SetStatus(codes.Error, "already_responded")
		return dto.SubmitResponseResult{}, ErrAlreadyResponded
	}

	answers := make([]models.Answer, 0, len(payload.Answers))
	for _, item := range payload.Answers {
		answers = append(answers, models.Answer{
			TemplateID:  templateID,
			QuestionID:  item.QuestionID,
			ResponderID: responder.ID,
			Rating:      item.Rating,
			Text:        strings.TrimSpace(s.policy.Sanitize(item.Text)),
			SubmittedAt: submittedAt,
		})
	}

	if err := evaluation.ValidateAnswers(template.Questions, answers); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "answers_invalid")
		return dto.SubmitResponseResult{}, err
	}

	if err := s.answers.CreateBatch(ctx, answers); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "answers_persist_failed")
		return dto.SubmitResponseResult{}, err
	}

	if s.activity != nil {
		entityID := templateID
		_, _ = s.activity.Record(ctx, ActivityEntry{
			ActorID:    responder.ID,
			ActorRole:  responder.Role,
			Action:     "response.submitted",
			EntityType: "survey_template",
			EntityID:   &entityID,
			Metadata: map[string]interface{}{
				"answer_count": len(answers),
				"course_id":    template.CourseID,
			},
		})
	}

	span.SetAttributes(attribute.Int("response.answer_count", len(answers)))

	return dto.SubmitResponseResult{
		TemplateID:  templateID,
		ResponderID: responder.ID,
		AnswerCount: len(answers),
		SubmittedAt: submittedAt,
	}, nil
}

func (s *responseService) ViewerStatus(ctx context.Context, templateID, responderID uint) (dto.TemplateViewerStatus, error) {
	template, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TemplateViewerStatus{}, ErrTemplateNotFound
		}
		return dto.TemplateViewerStatus{}, err
	}

	responded, err := s.answers.HasResponded(ctx, templateID, responderID)
	if err != nil {
		return dto.TemplateViewerStatus{}, err
	}

	return dto.TemplateViewerStatus{
		TemplateID:   template.ID,
		Name:         template.Name,
		OpenDate:     dto.FormatDate(template.OpenDate),
		CloseDate:    dto.FormatDate(template.CloseDate),
		HasResponded: responded,
		Status:       evaluation.ResolveStatus(s.now(), template.OpenDate, template.CloseDate, responded),
	}, nil
}
