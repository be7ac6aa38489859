package evaluation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hanchanwook/lms-eval-api/internal/models"
)

func ratingAnswer(questionID, responderID uint, value int) models.Answer {
	return models.Answer{
		QuestionID:  questionID,
		ResponderID: responderID,
		Rating:      &value,
		SubmittedAt: time.Now(),
	}
}

func textAnswer(questionID, responderID uint, value string) models.Answer {
	return models.Answer{
		QuestionID:  questionID,
		ResponderID: responderID,
		Text:        value,
		SubmittedAt: time.Now(),
	}
}

func TestAggregateMeanScore(t *testing.T) {
	questions := []models.Question{{ID: 1, QuestionNum: 1, Kind: models.QuestionKindRating}}
	answers := []models.Answer{
		ratingAnswer(1, 10, 5),
		ratingAnswer(1, 11, 4),
		ratingAnswer(1, 12, 3),
	}

	stats := Aggregate(questions, answers)
	require.Len(t, stats, 1)
	require.Equal(t, 3, stats[0].ResponseCount)
	require.InDelta(t, 4.0, stats[0].MeanScore, 1e-9)
}

func TestAggregateEmptyQuestion(t *testing.T) {
	questions := []models.Question{
		{ID: 1, QuestionNum: 1, Kind: models.QuestionKindRating},
		{ID: 2, QuestionNum: 2, Kind: models.QuestionKindText},
	}

	stats := Aggregate(questions, nil)
	require.Len(t, stats, 2)
	require.Equal(t, 0, stats[0].ResponseCount)
	require.Zero(t, stats[0].MeanScore)
	require.Equal(t, 0, stats[1].ResponseCount)
	require.Empty(t, stats[1].TextAnswers)
	require.NotNil(t, stats[1].TextAnswers)
}

func TestAggregateDeduplicatesByResponder(t *testing.T) {
	questions := []models.Question{{ID: 1, QuestionNum: 1, Kind: models.QuestionKindRating}}
	answers := []models.Answer{
		ratingAnswer(1, 10, 5),
		ratingAnswer(1, 10, 3),
	}

	stats := Aggregate(questions, answers)
	require.Len(t, stats, 1)
	require.Equal(t, 1, stats[0].ResponseCount, "same responder must count once")
	require.InDelta(t, 5.0, stats[0].MeanScore, 1e-9, "first occurrence wins")
}

func TestAggregateDropsUnknownQuestions(t *testing.T) {
	questions := []models.Question{{ID: 1, QuestionNum: 1, Kind: models.QuestionKindRating}}
	answers := []models.Answer{
		ratingAnswer(1, 10, 4),
		ratingAnswer(99, 10, 1),
	}

	stats := Aggregate(questions, answers)
	require.Len(t, stats, 1)
	require.Equal(t, 1, stats[0].ResponseCount)
	require.InDelta(t, 4.0, stats[0].MeanScore, 1e-9)
}

func TestAggregateTextAnswersKeepOrder(t *testing.T) {
	questions := []models.Question{
		{ID: 1, QuestionNum: 1, Kind: models.QuestionKindRating},
		{ID: 2, QuestionNum: 2, Kind: models.QuestionKindText},
	}
	answers := []models.Answer{
		ratingAnswer(1, 10, 5),
		ratingAnswer(1, 11, 5),
		ratingAnswer(1, 12, 4),
		textAnswer(2, 10, "good"),
		textAnswer(2, 11, "ok"),
	}

	stats := Aggregate(questions, answers)
	require.Len(t, stats, 2)
	require.Equal(t, 3, stats[0].ResponseCount)
	require.InDelta(t, 4.666666667, stats[0].MeanScore, 1e-6)
	require.Equal(t, 2, stats[1].ResponseCount)
	require.Equal(t, "good", stats[1].TextAnswers[0].Value)
	require.Equal(t, "ok", stats[1].TextAnswers[1].Value)
}

func TestAggregateOrdersByQuestionNum(t *testing.T) {
	questions := []models.Question{
		{ID: 3, QuestionNum: 2, Kind: models.QuestionKindText},
		{ID: 7, QuestionNum: 1, Kind: models.QuestionKindRating},
	}

	stats := Aggregate(questions, nil)
	require.Equal(t, uint(7), stats[0].QuestionID)
	require.Equal(t, uint(3), stats[1].QuestionID)
}

func TestAggregateIdempotentAndNonMutating(t *testing.T) {
	questions := []models.Question{
		{ID: 2, QuestionNum: 2, Kind: models.QuestionKindText},
		{ID: 1, QuestionNum: 1, Kind: models.QuestionKindRating},
	}
	answers := []models.Answer{
		ratingAnswer(1, 10, 5),
		textAnswer(2, 10, "fine"),
	}

	first := Aggregate(questions, answers)
	second := Aggregate(questions, answers)
	require.Equal(t, first, second)

	// Input order must survive aggregation.
	require.Equal(t, uint(2), questions[0].ID)
	require.Equal(t, uint(1), questions[1].ID)
}
