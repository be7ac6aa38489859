package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/hanchanwook/lms-eval-api/internal/models"
)

// TemplateFilter describes pagination & search options for template listings.
type TemplateFilter struct {
	CourseID *uint
	Search   string
	Sort     string
	Page     int
	PageSize int
}

// TemplateRepository defines persistence operations for survey templates and
// their questions.
type TemplateRepository interface {
	ListWithFilter(ctx context.Context, filter TemplateFilter) ([]models.SurveyTemplate, int64, error)
	ListByCourse(ctx context.Context, courseID uint) ([]models.SurveyTemplate, error)
	GetByID(ctx context.Context, id uint) (models.SurveyTemplate, error)
	Create(ctx context.Context, template *models.SurveyTemplate) error
	Update(ctx context.Context, template *models.SurveyTemplate) error
	ReplaceQuestions(ctx context.Context, templateID uint, questions []models.Question) error
	Delete(ctx context.Context, id uint) error
}

type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository instantiates a GORM-backed repository.
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) ListWithFilter(ctx context.Context, filter TemplateFilter) ([]models.SurveyTemplate, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SurveyTemplate{})

	if filter.CourseID != nil {
		query = query.Where("course_id = ?", *filter.CourseID)
	}

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(strings.TrimSpace(filter.Search)) + "%"
		query = query.Where("LOWER(name) LIKE ?", pattern)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(normalizeTemplateSort(filter.Sort))

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		offset := (page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var templates []models.SurveyTemplate
	if err := query.Preload("Questions").Find(&templates).Error; err != nil {
		return nil, 0, err
	}

	return templates, total, nil
}

func (r *templateRepository) ListByCourse(ctx context.Context, courseID uint) ([]models.SurveyTemplate, error) {
	var templates []models.SurveyTemplate
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("open_date ASC").
		Preload("Questions").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *templateRepository) GetByID(ctx context.Context, id uint) (models.SurveyTemplate, error) {
	var template models.SurveyTemplate
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_num ASC")
		}).
		First(&template, id).Error
	if err != nil {
		return models.SurveyTemplate{}, err
	}

	return template, nil
}

func (r *templateRepository) Create(ctx context.Context, template *models.SurveyTemplate) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *templateRepository) Update(ctx context.Context, template *models.SurveyTemplate) error {
	return r.db.WithContext(ctx).Save(template).Error
}

func (r *templateRepository) ReplaceQuestions(ctx context.Context, templateID uint, questions []models.Question) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", templateID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		if len(questions) == 0 {
			return nil
		}
		for i := range questions {
			questions[i].TemplateID = templateID
		}
		return tx.Create(&questions).Error
	})
}

func (r *templateRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.SurveyTemplate{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func normalizeTemplateSort(sort string) string {
	switch strings.ToLower(strings.TrimSpace(sort)) {
	case "open_date", "open_date:asc":
		return "open_date ASC"
	case "-open_date", "open_date:desc":
		return "open_date DESC"
	case "name", "name:asc":
		return "name ASC"
	case "-name", "name:desc":
		return "name DESC"
	default:
		return "open_date ASC"
	}
}
