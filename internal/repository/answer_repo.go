package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hanchanwook/lms-eval-api/internal/models"
)

// AnswerRepository persists submitted answers. Submissions are write-once
// batches; there is no update path.
type AnswerRepository interface {
	CreateBatch(ctx context.Context, answers []models.Answer) error
	ListByTemplate(ctx context.Context, templateID uint) ([]models.Answer, error)
	HasResponded(ctx context.Context, templateID, responderID uint) (bool, error)
	RespondedTemplateIDs(ctx context.Context, responderID uint, templateIDs []uint) (map[uint]struct{}, error)
}

type answerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository instantiates a GORM-backed repository.
func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) CreateBatch(ctx context.Context, answers []models.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&answers).Error
	})
}

func (r *answerRepository) ListByTemplate(ctx context.Context, templateID uint) ([]models.Answer, error) {
	var answers []models.Answer
	err := r.db.WithContext(ctx).
		Where("template_id = ?", templateID).
		Order("submitted_at ASC, id ASC").
		Find(&answers).Error
	if err != nil {
		return nil, err
	}

	return answers, nil
}

func (r *answerRepository) HasResponded(ctx context.Context, templateID, responderID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Answer{}).
		Where("template_id = ? AND responder_id = ?", templateID, responderID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *answerRepository) RespondedTemplateIDs(ctx context.Context, responderID uint, templateIDs []uint) (map[uint]struct{}, error) {
	responded := make(map[uint]struct{})
	if len(templateIDs) == 0 {
		return responded, nil
	}

	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Answer{}).
		Distinct("template_id").
		Where("responder_id = ? AND template_id IN ?", responderID, templateIDs).
		Pluck("template_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		responded[id] = struct{}{}
	}

	return responded, nil
}
