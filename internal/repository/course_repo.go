package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hanchanwook/lms-eval-api/internal/models"
)

// CourseRepository reads course records for evaluation assembly. Course
// lifecycle management lives elsewhere in the LMS; this service only needs
// lookups plus creation for seeding and tests.
type CourseRepository interface {
	ListWithTemplates(ctx context.Context) ([]models.Course, error)
	GetByID(ctx context.Context, id uint) (models.Course, error)
	Create(ctx context.Context, course *models.Course) error
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository instantiates a GORM-backed repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) ListWithTemplates(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.WithContext(ctx).
		Preload("Templates").
		Order("start_date ASC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).Preload("Templates").First(&course, id).Error; err != nil {
		return models.Course{}, err
	}

	return course, nil
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}
