package models

import (
	"sort"
	"time"
)

// SurveyTemplate represents an evaluation survey assigned to a course,
// answerable between OpenDate and CloseDate (both inclusive, day granularity).
type SurveyTemplate struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	CourseID        uint       `gorm:"not null;uniqueIndex:idx_course_group" json:"course_id"`
	TemplateGroupID string     `gorm:"size:64;not null;uniqueIndex:idx_course_group" json:"template_group_id"`
	Name            string     `gorm:"size:255;not null" json:"name"`
	OpenDate        *time.Time `json:"open_date"`
	CloseDate       *time.Time `json:"close_date"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Questions       []Question `gorm:"foreignKey:TemplateID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"questions,omitempty"`
}

// OrderedQuestions returns the template's questions sorted by QuestionNum.
// The sort is stable so questions sharing a number keep their stored order.
func (t SurveyTemplate) OrderedQuestions() []Question {
	ordered := make([]Question, len(t.Questions))
	copy(ordered, t.Questions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].QuestionNum < ordered[j].QuestionNum
	})
	return ordered
}

// QuestionKind discriminates how a question is answered.
type QuestionKind string

const (
	// QuestionKindRating is a 1-5 integer scale question.
	QuestionKindRating QuestionKind = "rating"
	// QuestionKindText is a free-form text question.
	QuestionKindText QuestionKind = "text"
)

// Valid reports whether the kind is one of the supported values.
func (k QuestionKind) Valid() bool {
	return k == QuestionKindRating || k == QuestionKindText
}

// Question is a single prompt within a survey template.
type Question struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	TemplateID  uint         `gorm:"not null;index" json:"template_id"`
	QuestionNum int          `gorm:"not null" json:"question_num"`
	Text        string       `gorm:"type:text;not null" json:"text"`
	Kind        QuestionKind `gorm:"size:16;not null" json:"kind"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
