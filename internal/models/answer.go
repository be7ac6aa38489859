package models

import "time"

// Answer is a single response to a question. Exactly one of Rating or Text is
// populated depending on the question's kind. Answers are written once as part
// of a batch submission and never updated.
type Answer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TemplateID  uint      `gorm:"not null;index" json:"template_id"`
	QuestionID  uint      `gorm:"not null;index" json:"question_id"`
	ResponderID uint      `gorm:"not null;index" json:"responder_id"`
	Rating      *int      `json:"rating"`
	Text        string    `gorm:"type:text" json:"text"`
	SubmittedAt time.Time `gorm:"not null" json:"submitted_at"`
	CreatedAt   time.Time `json:"created_at"`
}
