package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hanchanwook/lms-eval-api/internal/models"
)

func TestTemplateRepositoryCreateAndGetOrdersQuestions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTemplateRepository(db)
	ctx := context.Background()

	open := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	closeDate := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	template := models.SurveyTemplate{
		CourseID:        1,
		TemplateGroupID: "grp-1",
		Name:            "Midterm Survey",
		OpenDate:        &open,
		CloseDate:       &closeDate,
		Questions: []models.Question{
			{QuestionNum: 2, Text: "Any comments?", Kind: models.QuestionKindText},
			{QuestionNum: 1, Text: "Rate the course", Kind: models.QuestionKindRating},
		},
	}
	require.NoError(t, repo.Create(ctx, &template))
	require.NotZero(t, template.ID)

	stored, err := repo.GetByID(ctx, template.ID)
	require.NoError(t, err)
	require.Len(t, stored.Questions, 2)
	require.Equal(t, 1, stored.Questions[0].QuestionNum)
	require.Equal(t, models.QuestionKindRating, stored.Questions[0].Kind)
}

func TestTemplateRepositoryFilterAndPagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTemplateRepository(db)
	ctx := context.Background()

	for i, name := range []string{"Week 1 Survey", "Week 2 Survey", "Final Evaluation"} {
		open := time.Date(2024, time.January, 1+i, 0, 0, 0, 0, time.UTC)
		require.NoError(t, repo.Create(ctx, &models.SurveyTemplate{
			CourseID:        1,
			TemplateGroupID: name,
			Name:            name,
			OpenDate:        &open,
		}))
	}

	templates, total, err := repo.ListWithFilter(ctx, TemplateFilter{Search: "week", PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, templates, 2)

	templates, total, err = repo.ListWithFilter(ctx, TemplateFilter{PageSize: 2, Page: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, templates, 1)
}

func TestTemplateRepositoryReplaceQuestions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTemplateRepository(db)
	ctx := context.Background()

	template := models.SurveyTemplate{
		CourseID:        1,
		TemplateGroupID: "grp-2",
		Name:            "Rework Survey",
		Questions: []models.Question{
			{QuestionNum: 1, Text: "Old question", Kind: models.QuestionKindText},
		},
	}
	require.NoError(t, repo.Create(ctx, &template))

	require.NoError(t, repo.ReplaceQuestions(ctx, template.ID, []models.Question{
		{QuestionNum: 1, Text: "Rate the instructor", Kind: models.QuestionKindRating},
		{QuestionNum: 2, Text: "What should change?", Kind: models.QuestionKindText},
	}))

	stored, err := repo.GetByID(ctx, template.ID)
	require.NoError(t, err)
	require.Len(t, stored.Questions, 2)
	require.Equal(t, "Rate the instructor", stored.Questions[0].Text)
}

func TestTemplateRepositoryDeleteMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTemplateRepository(db)

	err := repo.Delete(context.Background(), 12345)
	require.Error(t, err)
}
