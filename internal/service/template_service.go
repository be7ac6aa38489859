package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/hanchanwook/lms-eval-api/internal/dto"
	"github.com/hanchanwook/lms-eval-api/internal/evaluation"
	"github.com/hanchanwook/lms-eval-api/internal/models"
	"github.com/hanchanwook/lms-eval-api/internal/repository"
)

// ErrTemplateNotFound indicates the survey template was not located.
var ErrTemplateNotFound = errors.New("survey template not found")

// ErrCourseNotFound indicates the referenced course does not exist.
var ErrCourseNotFound = errors.New("course not found")

// TemplateService encapsulates staff-facing survey template management.
type TemplateService interface {
	List(ctx context.Context, filter repository.TemplateFilter) (dto.TemplateListResponse, error)
	Get(ctx context.Context, id uint) (dto.TemplateResponse, error)
	Create(ctx context.Context, payload dto.TemplateCreateRequest, actor Actor) (dto.TemplateResponse, error)
	Update(ctx context.Context, id uint, payload dto.TemplateUpdateRequest, actor Actor) (dto.TemplateResponse, error)
	Delete(ctx context.Context, id uint, actor Actor) error
}

type templateService struct {
	templates repository.TemplateRepository
	courses   repository.CourseRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewTemplateService constructs the template management service.
func NewTemplateService(templates repository.TemplateRepository, courses repository.CourseRepository, validator *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) TemplateService {
	return &templateService{
		templates: templates,
		courses:   courses,
		validator: validator,
		activity:  activity,
		logger:    logger.With().Str("component", "template_service").Logger(),
	}
}

func (s *templateService) List(ctx context.Context, filter repository.TemplateFilter) (dto.TemplateListResponse, error) {
	filter.Page = maxInt(filter.Page, 1)
	filter.PageSize = clampPageSize(filter.PageSize)

	templates, total, err := s.templates.ListWithFilter(ctx, filter)
	if err != nil {
		return dto.TemplateListResponse{}, err
	}

	return dto.TemplateListResponse{
		Items:      dto.NewTemplateResponseSlice(templates),
		Pagination: dto.NewPaginationMeta(filter.Page, filter.PageSize, total),
	}, nil
}

func (s *templateService) Get(ctx context.Context, id uint) (dto.TemplateResponse, error) {
	template, err := s.templates.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TemplateResponse{}, ErrTemplateNotFound
		}
		return dto.TemplateResponse{}, err
	}

	return dto.NewTemplateResponse(template), nil
}

func (s *templateService) Create(ctx context.Context, payload dto.TemplateCreateRequest, actor Actor) (dto.TemplateResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TemplateResponse{}, err
	}

	if _, err := s.courses.GetByID(ctx, payload.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TemplateResponse{}, ErrCourseNotFound
		}
		return dto.TemplateResponse{}, err
	}

	openDate, err := parseDate(payload.OpenDate)
	if err != nil {
		return dto.TemplateResponse{}, err
	}
	closeDate, err := parseDate(payload.CloseDate)
	if err != nil {
		return dto.TemplateResponse{}, err
	}
	if err := evaluation.ValidateSchedule(openDate, closeDate); err != nil {
		return dto.TemplateResponse{}, err
	}

	questions := buildQuestions(payload.Questions)
	if err := evaluation.ValidateQuestions(questions); err != nil {
		return dto.TemplateResponse{}, err
	}

	groupID := strings.TrimSpace(payload.TemplateGroupID)
	if groupID == "" {
		groupID = uuid.NewString()
	}

	template := models.SurveyTemplate{
		CourseID:        payload.CourseID,
		TemplateGroupID: groupID,
		Name:            strings.TrimSpace(payload.Name),
		OpenDate:        openDate,
		CloseDate:       closeDate,
		Questions:       questions,
	}

	if err := s.templates.Create(ctx, &template); err != nil {
		return dto.TemplateResponse{}, err
	}

	s.recordActivity(ctx, actor, "template.created", template.ID, map[string]interface{}{
		"course_id": template.CourseID,
		"name":      template.Name,
	})

	return dto.NewTemplateResponse(template), nil
}

func (s *templateService) Update(ctx context.Context, id uint, payload dto.TemplateUpdateRequest, actor Actor) (dto.TemplateResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TemplateResponse{}, err
	}

	template, err := s.templates.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TemplateResponse{}, ErrTemplateNotFound
		}
		return dto.TemplateResponse{}, err
	}

	if payload.Name != nil {
		template.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.OpenDate != nil {
		openDate, err := parseDate(payload.OpenDate)
		if err != nil {
			return dto.TemplateResponse{}, err
		}
		template.OpenDate = openDate
	}
	if payload.CloseDate != nil {
		closeDate, err := parseDate(payload.CloseDate)
		if err != nil {
			return dto.TemplateResponse{}, err
		}
		template.CloseDate = closeDate
	}

	if err := evaluation.ValidateSchedule(template.OpenDate, template.CloseDate); err != nil {
		return dto.TemplateResponse{}, err
	}

	if payload.Questions != nil {
		questions := buildQuestions(*payload.Questions)
		if err := evaluation.ValidateQuestions(questions); err != nil {
			return dto.TemplateResponse{}, err
		}
		if err := s.templates.ReplaceQuestions(ctx, template.ID, questions); err != nil {
			return dto.TemplateResponse{}, err
		}
		template.Questions = questions
	}

	// Save the scalar fields without touching the association rows again.
	saved := template
	saved.Questions = nil
	if err := s.templates.Update(ctx, &saved); err != nil {
		return dto.TemplateResponse{}, err
	}

	s.recordActivity(ctx, actor, "template.updated", template.ID, map[string]interface{}{
		"course_id": template.CourseID,
		"name":      template.Name,
	})

	return dto.NewTemplateResponse(template), nil
}

func (s *templateService) Delete(ctx context.Context, id uint, actor Actor) error {
	if err := s.templates.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}

	s.recordActivity(ctx, actor, "template.deleted", id, nil)

	return nil
}

func (s *templateService) recordActivity(ctx context.Context, actor Actor, action string, templateID uint, metadata map[string]interface{}) {
	if s.activity == nil {
		return
	}
	entityID := templateID
	if _, err := s.activity.Record(ctx, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: "survey_template",
		EntityID:   &entityID,
		Metadata:   metadata,
	}); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("failed to record activity")
	}
}

func buildQuestions(payloads []dto.QuestionPayload) []models.Question {
	questions := make([]models.Question, 0, len(payloads))
	for _, payload := range payloads {
		questions = append(questions, models.Question{
			QuestionNum: payload.QuestionNum,
			Text:        strings.TrimSpace(payload.Text),
			Kind:        models.QuestionKind(payload.Kind),
		})
	}
	return questions
}

func parseDate(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dto.DateLayout, strings.TrimSpace(*value))
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
