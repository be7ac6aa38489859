package dto

import (
	"time"

	"github.com/hanchanwook/lms-eval-api/internal/evaluation"
)

// AnswerPayload is one answer inside a submission batch.
type AnswerPayload struct {
	QuestionID uint   `json:"question_id" validate:"required"`
	Rating     *int   `json:"rating" validate:"omitempty,min=1,max=5"`
	Text       string `json:"text"`
}

// SubmitResponseRequest is the atomic answer batch a responder submits for a
// template. One submission per responder per template.
type SubmitResponseRequest struct {
	Answers []AnswerPayload `json:"answers" validate:"required,min=1,dive"`
}

// SubmitResponseResult reports a stored submission.
type SubmitResponseResult struct {
	TemplateID  uint      `json:"template_id"`
	ResponderID uint      `json:"responder_id"`
	AnswerCount int       `json:"answer_count"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// TemplateViewerStatus reports a template's window and the viewer's status.
type TemplateViewerStatus struct {
	TemplateID   uint              `json:"template_id"`
	Name         string            `json:"name"`
	OpenDate     *string           `json:"open_date"`
	CloseDate    *string           `json:"close_date"`
	HasResponded bool              `json:"has_responded"`
	Status       evaluation.Status `json:"status"`
}
