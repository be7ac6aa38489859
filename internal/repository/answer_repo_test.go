package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hanchanwook/lms-eval-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Course{}, &models.SurveyTemplate{}, &models.Question{}, &models.Answer{}, &models.ActivityLog{}))
	return db
}

func intPtr(v int) *int {
	return &v
}

func TestAnswerRepositoryBatchAndLookup(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAnswerRepository(db)
	ctx := context.Background()
	now := time.Now()

	answers := []models.Answer{
		{TemplateID: 1, QuestionID: 1, ResponderID: 10, Rating: intPtr(5), SubmittedAt: now},
		{TemplateID: 1, QuestionID: 2, ResponderID: 10, Text: "good pace", SubmittedAt: now},
	}
	require.NoError(t, repo.CreateBatch(ctx, answers))

	stored, err := repo.ListByTemplate(ctx, 1)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	responded, err := repo.HasResponded(ctx, 1, 10)
	require.NoError(t, err)
	require.True(t, responded)

	responded, err = repo.HasResponded(ctx, 1, 99)
	require.NoError(t, err)
	require.False(t, responded)
}

func TestAnswerRepositoryRespondedTemplateIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAnswerRepository(db)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.CreateBatch(ctx, []models.Answer{
		{TemplateID: 1, QuestionID: 1, ResponderID: 10, Rating: intPtr(4), SubmittedAt: now},
		{TemplateID: 1, QuestionID: 2, ResponderID: 10, Text: "ok", SubmittedAt: now},
		{TemplateID: 2, QuestionID: 3, ResponderID: 11, Rating: intPtr(3), SubmittedAt: now},
	}))

	responded, err := repo.RespondedTemplateIDs(ctx, 10, []uint{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, responded, 1)
	require.Contains(t, responded, uint(1))

	empty, err := repo.RespondedTemplateIDs(ctx, 10, nil)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestAnswerRepositoryEmptyBatchIsNoop(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAnswerRepository(db)

	require.NoError(t, repo.CreateBatch(context.Background(), nil))
}
