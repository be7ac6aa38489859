package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/hanchanwook/lms-eval-api/internal/dto"
	"github.com/hanchanwook/lms-eval-api/internal/evaluation"
	"github.com/hanchanwook/lms-eval-api/internal/models"
)

func openTemplate(now time.Time) models.SurveyTemplate {
	open := now.AddDate(0, 0, -2)
	closed := now.AddDate(0, 0, 2)
	return models.SurveyTemplate{
		ID:              11,
		CourseID:        1,
		TemplateGroupID: "group-a",
		Name:            "Midterm survey",
		OpenDate:        &open,
		CloseDate:       &closed,
		Questions: []models.Question{
			{ID: 101, TemplateID: 11, QuestionNum: 1, Text: "Rate the lectures", Kind: models.QuestionKindRating},
			{ID: 102, TemplateID: 11, QuestionNum: 2, Text: "What should change?", Kind: models.QuestionKindText},
		},
	}
}

func newResponseServiceForTest(templates *fakeTemplateRepo, answers *fakeAnswerRepo, recorder *recorderStub, now time.Time) *responseService {
	svc := NewResponseService(templates, answers, validator.New(validator.WithRequiredStructEnabled()), recorder, testLogger()).(*responseService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestSubmitStoresBatchAndRecordsActivity(t *testing.T) {
	now := time.Date(2026, time.March, 10, 11, 0, 0, 0, time.UTC)
	answerRepo := newFakeAnswerRepo()
	recorder := &recorderStub{}
	svc := newResponseServiceForTest(newFakeTemplateRepo(openTemplate(now)), answerRepo, recorder, now)

	result, err := svc.Submit(context.Background(), 11, Actor{ID: 77, Role: "student"}, dto.SubmitResponseRequest{
		Answers: []dto.AnswerPayload{
			{QuestionID: 101, Rating: testRating(5)},
			{QuestionID: 102, Text: "  <b>More</b> exercises  "},
		},
	})
	require.NoError(t, err)
	require.Equal(t, uint(11), result.TemplateID)
	require.Equal(t, uint(77), result.ResponderID)
	require.Equal(t, 2, result.AnswerCount)
	require.Equal(t, now, result.SubmittedAt)

	require.Len(t, answerRepo.created, 2)
	require.Equal(t, "More exercises", answerRepo.created[1].Text)

	require.Len(t, recorder.entries, 1)
	require.Equal(t, "response.submitted", recorder.entries[0].Action)
	require.Equal(t, uint(77), recorder.entries[0].ActorID)
}

func TestSubmitRejectsClosedWindow(t *testing.T) {
	now := time.Date(2026, time.March, 10, 11, 0, 0, 0, time.UTC)
	template := openTemplate(now)
	open := now.AddDate(0, 0, -10)
	closed := now.AddDate(0, 0, -5)
	template.OpenDate = &open
	template.CloseDate = &closed

	svc := newResponseServiceForTest(newFakeTemplateRepo(template), newFakeAnswerRepo(), &recorderStub{}, now)

	_, err := svc.Submit(context.Background(), 11, Actor{ID: 77}, dto.SubmitResponseRequest{
		Answers: []dto.AnswerPayload{{QuestionID: 101, Rating: testRating(4)}},
	})
	require.ErrorIs(t, err, ErrTemplateNotOpen)
}

func TestSubmitRejectsMissingSchedule(t *testing.T) {
	now := time.Date(2026, time.March, 10, 11, 0, 0, 0, time.UTC)
	template := openTemplate(now)
	template.CloseDate = nil

	svc := newResponseServiceForTest(newFakeTemplateRepo(template), newFakeAnswerRepo(), &recorderStub{}, now)

	_, err := svc.Submit(context.Background(), 11, Actor{ID: 77}, dto.SubmitResponseRequest{
		Answers: []dto.AnswerPayload{{QuestionID: 101, Rating: testRating(4)}},
	})
	require.ErrorIs(t, err, ErrTemplateNotOpen)
}

func TestSubmitRejectsSecondSubmission(t *testing.T) {
	now := time.Date(2026, time.March, 10, 11, 0, 0, 0, time.UTC)
	answerRepo := newFakeAnswerRepo()
	answerRepo.markResponded(11, 77)

	svc := newResponseServiceForTest(newFakeTemplateRepo(openTemplate(now)), answerRepo, &recorderStub{}, now)

	_, err := svc.Submit(context.Background(), 11, Actor{ID: 77}, dto.SubmitResponseRequest{
		Answers: []dto.AnswerPayload{{QuestionID: 101, Rating: testRating(4)}},
	})
	require.ErrorIs(t, err, ErrAlreadyResponded)
}

func TestSubmitRejectsKindMismatch(t *testing.T) {
	now := time.Date(2026, time.March, 10, 11, 0, 0, 0, time.UTC)
	answerRepo := newFakeAnswerRepo()
	svc := newResponseServiceForTest(newFakeTemplateRepo(openTemplate(now)), answerRepo, &recorderStub{}, now)

	_, err := svc.Submit(context.Background(), 11, Actor{ID: 77}, dto.SubmitResponseRequest{
		Answers: []dto.AnswerPayload{{QuestionID: 101, Text: "no rating given"}},
	})
	require.ErrorIs(t, err, evaluation.ErrKindMismatch)
	require.Empty(t, answerRepo.created)
}

func TestSubmitRejectsUnknownQuestion(t *testing.T) {
	now := time.Date(2026, time.March, 10, 11, 0, 0, 0, time.UTC)
	svc := newResponseServiceForTest(newFakeTemplateRepo(openTemplate(now)), newFakeAnswerRepo(), &recorderStub{}, now)

	_, err := svc.Submit(context.Background(), 11, Actor{ID: 77}, dto.SubmitResponseRequest{
		Answers: []dto.AnswerPayload{{QuestionID: 999, Rating: testRating(3)}},
	})
	require.ErrorIs(t, err, evaluation.ErrUnknownQuestion)
}

func TestSubmitUnknownTemplate(t *testing.T) {
	now := time.Date(2026, time.March, 10, 11, 0, 0, 0, time.UTC)
	svc := newResponseServiceForTest(newFakeTemplateRepo(), newFakeAnswerRepo(), &recorderStub{}, now)

	_, err := svc.Submit(context.Background(), 11, Actor{ID: 77}, dto.SubmitResponseRequest{
		Answers: []dto.AnswerPayload{{QuestionID: 101, Rating: testRating(3)}},
	})
	require.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestViewerStatusReflectsSubmission(t *testing.T) {
	now := time.Date(2026, time.March, 10, 11, 0, 0, 0, time.UTC)
	answerRepo := newFakeAnswerRepo()
	svc := newResponseServiceForTest(newFakeTemplateRepo(openTemplate(now)), answerRepo, &recorderStub{}, now)

	before, err := svc.ViewerStatus(context.Background(), 11, 77)
	require.NoError(t, err)
	require.False(t, before.HasResponded)
	require.Equal(t, evaluation.StatusOpenUnanswered, before.Status)

	answerRepo.markResponded(11, 77)

	after, err := svc.ViewerStatus(context.Background(), 11, 77)
	require.NoError(t, err)
	require.True(t, after.HasResponded)
	require.Equal(t, evaluation.StatusOpenAnswered, after.Status)
}
