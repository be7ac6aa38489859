package models

import "time"

// Course represents a course offering that evaluation surveys attach to.
type Course struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	Name      string           `gorm:"size:255;not null" json:"name"`
	StartDate *time.Time       `json:"start_date"`
	EndDate   *time.Time       `json:"end_date"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Templates []SurveyTemplate `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"templates,omitempty"`
}
