package dto

import (
	"time"

	"github.com/hanchanwook/lms-eval-api/internal/models"
)

// QuestionPayload describes a question within a template create/update request.
type QuestionPayload struct {
	QuestionNum int    `json:"question_num" validate:"required,min=1"`
	Text        string `json:"text" validate:"required,min=3"`
	Kind        string `json:"kind" validate:"required,oneof=rating text"`
}

// TemplateCreateRequest describes the payload for creating a survey template.
type TemplateCreateRequest struct {
	CourseID        uint              `json:"course_id" validate:"required"`
	TemplateGroupID string            `json:"template_group_id" validate:"omitempty,max=64"`
	Name            string            `json:"name" validate:"required,min=3"`
	OpenDate        *string           `json:"open_date" validate:"omitempty,datetime=2006-01-02"`
	CloseDate       *string           `json:"close_date" validate:"omitempty,datetime=2006-01-02"`
	Questions       []QuestionPayload `json:"questions" validate:"omitempty,dive"`
}

// TemplateUpdateRequest describes a partial template update. A nil Questions
// field leaves the question list untouched; an empty one clears it.
type TemplateUpdateRequest struct {
	Name      *string            `json:"name" validate:"omitempty,min=3"`
	OpenDate  *string            `json:"open_date" validate:"omitempty,datetime=2006-01-02"`
	CloseDate *string            `json:"close_date" validate:"omitempty,datetime=2006-01-02"`
	Questions *[]QuestionPayload `json:"questions" validate:"omitempty,dive"`
}

// QuestionResponse is the serialized question representation.
type QuestionResponse struct {
	ID          uint   `json:"id"`
	QuestionNum int    `json:"question_num"`
	Text        string `json:"text"`
	Kind        string `json:"kind"`
}

// TemplateResponse is the serialized template representation.
type TemplateResponse struct {
	ID              uint               `json:"id"`
	CourseID        uint               `json:"course_id"`
	TemplateGroupID string             `json:"template_group_id"`
	Name            string             `json:"name"`
	OpenDate        *string            `json:"open_date"`
	CloseDate       *string            `json:"close_date"`
	Questions       []QuestionResponse `json:"questions"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// NewTemplateResponse converts a model into a DTO. Questions are reported in
// template order.
func NewTemplateResponse(model models.SurveyTemplate) TemplateResponse {
	questions := model.OrderedQuestions()
	responses := make([]QuestionResponse, 0, len(questions))
	for _, question := range questions {
		responses = append(responses, QuestionResponse{
			ID:          question.ID,
			QuestionNum: question.QuestionNum,
			Text:        question.Text,
			Kind:        string(question.Kind),
		})
	}

	return TemplateResponse{
		ID:              model.ID,
		CourseID:        model.CourseID,
		TemplateGroupID: model.TemplateGroupID,
		Name:            model.Name,
		OpenDate:        FormatDate(model.OpenDate),
		CloseDate:       FormatDate(model.CloseDate),
		Questions:       responses,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

// NewTemplateResponseSlice converts a slice of models into DTOs.
func NewTemplateResponseSlice(templates []models.SurveyTemplate) []TemplateResponse {
	responses := make([]TemplateResponse, 0, len(templates))
	for _, template := range templates {
		responses = append(responses, NewTemplateResponse(template))
	}
	return responses
}

// TemplateListResponse pages serialized templates.
type TemplateListResponse struct {
	Items      []TemplateResponse `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
}
