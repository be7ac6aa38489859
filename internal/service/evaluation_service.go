package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/hanchanwook/lms-eval-api/internal/dto"
	"github.com/hanchanwook/lms-eval-api/internal/evaluation"
	"github.com/hanchanwook/lms-eval-api/internal/observability"
	"github.com/hanchanwook/lms-eval-api/internal/repository"
)

// EvaluationService produces the derived evaluation views: the per-viewer
// course summary and per-template answer statistics. Both are assembled from
// already-fetched snapshots by the pure helpers in internal/evaluation and
// cached in redis.
type EvaluationService interface {
	CourseSummaries(ctx context.Context, viewerID uint) (dto.CourseSummaryResponse, error)
	TemplateStats(ctx context.Context, templateID uint) (dto.TemplateStatsResponse, error)
}

type evaluationService struct {
	courses   repository.CourseRepository
	templates repository.TemplateRepository
	answers   repository.AnswerRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewEvaluationService builds the summary/statistics service.
func NewEvaluationService(courses repository.CourseRepository, templates repository.TemplateRepository, answers repository.AnswerRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) EvaluationService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &evaluationService{
		courses:   courses,
		templates: templates,
		answers:   answers,
		cache:     cache,
		cacheTTL:  ttl,
		logger:    logger.With().Str("component", "evaluation_service").Logger(),
		now:       time.Now,
	}
}

func (s *evaluationService) CourseSummaries(ctx context.Context, viewerID uint) (dto.CourseSummaryResponse, error) {
	start := time.Now()
	defer func() {
		observability.SummaryLatency().Observe(time.Since(start).Seconds())
	}()

	today := s.now()

	// Statuses only move at day boundaries, so the cache key carries the date.
	cacheKey := fmt.Sprintf("evaluation:summary:v1:%d:%s", viewerID, today.Format("2006-01-02"))
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var response dto.CourseSummaryResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				response.CacheHit = true
				observability.SummaryRequests().WithLabelValues("hit").Inc()
				return response, nil
			}
		} else if err != nil && !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("failed to read summary cache")
		}
	}

	courses, err := s.courses.ListWithTemplates(ctx)
	if err != nil {
		observability.SummaryRequests().WithLabelValues("error").Inc()
		return dto.CourseSummaryResponse{}, err
	}

	templateIDs := make([]uint, 0)
	for _, course := range courses {
		for _, template := range course.Templates {
			templateIDs = append(templateIDs, template.ID)
		}
	}

	respondedSet, err := s.answers.RespondedTemplateIDs(ctx, viewerID, templateIDs)
	if err != nil {
		observability.SummaryRequests().WithLabelValues("error").Inc()
		return dto.CourseSummaryResponse{}, err
	}

	states := make([]evaluation.CourseState, 0, len(courses))
	for _, course := range courses {
		state := evaluation.CourseState{Course: course, Templates: make([]evaluation.TemplateState, 0, len(course.Templates))}
		for _, template := range course.Templates {
			_, responded := respondedSet[template.ID]
			state.Templates = append(state.Templates, evaluation.TemplateState{
				Template:     template,
				HasResponded: responded,
			})
		}
		states = append(states, state)
	}

	summary := evaluation.Assemble(today, states)
	response := dto.CourseSummaryResponse{Courses: summary.Courses, Totals: summary.Totals}

	s.storeCache(ctx, cacheKey, response)
	observability.SummaryRequests().WithLabelValues("miss").Inc()

	return response, nil
}

func (s *evaluationService) TemplateStats(ctx context.Context, templateID uint) (dto.TemplateStatsResponse, error) {
	cacheKey := fmt.Sprintf("evaluation:stats:v1:%d", templateID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var response dto.TemplateStatsResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				response.CacheHit = true
				return response, nil
			}
		} else if err != nil && !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("failed to read stats cache")
		}
	}

	template, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TemplateStatsResponse{}, ErrTemplateNotFound
		}
		return dto.TemplateStatsResponse{}, err
	}

	answers, err := s.answers.ListByTemplate(ctx, templateID)
	if err != nil {
		return dto.TemplateStatsResponse{}, err
	}

	response := dto.TemplateStatsResponse{
		TemplateID:   template.ID,
		TemplateName: template.Name,
		Questions:    evaluation.Aggregate(template.Questions, answers),
	}

	s.storeCache(ctx, cacheKey, response)

	return response, nil
}

func (s *evaluationService) storeCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to store cache entry")
	}
}
