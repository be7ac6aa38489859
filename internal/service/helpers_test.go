package service

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/hanchanwook/lms-eval-api/internal/dto"
	"github.com/hanchanwook/lms-eval-api/internal/models"
	"github.com/hanchanwook/lms-eval-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func testDate(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func testRating(v int) *int {
	return &v
}

type fakeCourseRepo struct {
	courses []models.Course
}

func (f *fakeCourseRepo) ListWithTemplates(_ context.Context) ([]models.Course, error) {
	return f.courses, nil
}

func (f *fakeCourseRepo) GetByID(_ context.Context, id uint) (models.Course, error) {
	for _, course := range f.courses {
		if course.ID == id {
			return course, nil
		}
	}
	return models.Course{}, gorm.ErrRecordNotFound
}

func (f *fakeCourseRepo) Create(_ context.Context, course *models.Course) error {
	f.courses = append(f.courses, *course)
	return nil
}

type fakeTemplateRepo struct {
	templates map[uint]models.SurveyTemplate
	nextID    uint
	replaced  map[uint][]models.Question
}

func newFakeTemplateRepo(templates ...models.SurveyTemplate) *fakeTemplateRepo {
	repo := &fakeTemplateRepo{
		templates: make(map[uint]models.SurveyTemplate),
		replaced:  make(map[uint][]models.Question),
		nextID:    1,
	}
	for _, template := range templates {
		repo.templates[template.ID] = template
		if template.ID >= repo.nextID {
			repo.nextID = template.ID + 1
		}
	}
	return repo
}

func (f *fakeTemplateRepo) ListWithFilter(_ context.Context, _ repository.TemplateFilter) ([]models.SurveyTemplate, int64, error) {
	templates := make([]models.SurveyTemplate, 0, len(f.templates))
	for _, template := range f.templates {
		templates = append(templates, template)
	}
	return templates, int64(len(templates)), nil
}

func (f *fakeTemplateRepo) ListByCourse(_ context.Context, courseID uint) ([]models.SurveyTemplate, error) {
	var templates []models.SurveyTemplate
	for _, template := range f.templates {
		if template.CourseID == courseID {
			templates = append(templates, template)
		}
	}
	return templates, nil
}

func (f *fakeTemplateRepo) GetByID(_ context.Context, id uint) (models.SurveyTemplate, error) {
	template, ok := f.templates[id]
	if !ok {
		return models.SurveyTemplate{}, gorm.ErrRecordNotFound
	}
	return template, nil
}

func (f *fakeTemplateRepo) Create(_ context.Context, template *models.SurveyTemplate) error {
	template.ID = f.nextID
	f.nextID++
	f.templates[template.ID] = *template
	return nil
}

func (f *fakeTemplateRepo) Update(_ context.Context, template *models.SurveyTemplate) error {
	stored, ok := f.templates[template.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	questions := stored.Questions
	stored = *template
	if stored.Questions == nil {
		stored.Questions = questions
	}
	f.templates[template.ID] = stored
	return nil
}

func (f *fakeTemplateRepo) ReplaceQuestions(_ context.Context, templateID uint, questions []models.Question) error {
	f.replaced[templateID] = questions
	template, ok := f.templates[templateID]
	if ok {
		template.Questions = questions
		f.templates[templateID] = template
	}
	return nil
}

func (f *fakeTemplateRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.templates[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.templates, id)
	return nil
}

type fakeAnswerRepo struct {
	created   []models.Answer
	answers   map[uint][]models.Answer
	responded map[uint]map[uint]bool
}

func newFakeAnswerRepo() *fakeAnswerRepo {
	return &fakeAnswerRepo{
		answers:   make(map[uint][]models.Answer),
		responded: make(map[uint]map[uint]bool),
	}
}

func (f *fakeAnswerRepo) markResponded(templateID, responderID uint) {
	if f.responded[templateID] == nil {
		f.responded[templateID] = make(map[uint]bool)
	}
	f.responded[templateID][responderID] = true
}

func (f *fakeAnswerRepo) CreateBatch(_ context.Context, answers []models.Answer) error {
	f.created = append(f.created, answers...)
	for _, answer := range answers {
		f.answers[answer.TemplateID] = append(f.answers[answer.TemplateID], answer)
		f.markResponded(answer.TemplateID, answer.ResponderID)
	}
	return nil
}

func (f *fakeAnswerRepo) ListByTemplate(_ context.Context, templateID uint) ([]models.Answer, error) {
	return f.answers[templateID], nil
}

func (f *fakeAnswerRepo) HasResponded(_ context.Context, templateID, responderID uint) (bool, error) {
	return f.responded[templateID][responderID], nil
}

func (f *fakeAnswerRepo) RespondedTemplateIDs(_ context.Context, responderID uint, templateIDs []uint) (map[uint]struct{}, error) {
	result := make(map[uint]struct{})
	for _, templateID := range templateIDs {
		if f.responded[templateID][responderID] {
			result[templateID] = struct{}{}
		}
	}
	return result, nil
}

type recorderStub struct {
	entries []ActivityEntry
}

func (r *recorderStub) Record(_ context.Context, entry ActivityEntry) (dto.ActivityResponse, error) {
	r.entries = append(r.entries, entry)
	return dto.ActivityResponse{}, nil
}
