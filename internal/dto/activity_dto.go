package dto

import (
	"time"

	"github.com/hanchanwook/lms-eval-api/internal/models"
)

// ActivityResponse is a serialized audit trail entry.
type ActivityResponse struct {
	ID         uint                   `json:"id"`
	ActorID    uint                   `json:"actor_id"`
	ActorRole  string                 `json:"actor_role"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entity_type"`
	EntityID   *uint                  `json:"entity_id"`
	Metadata   map[string]interface{} `json:"metadata"`
	CreatedAt  time.Time              `json:"created_at"`
}

// NewActivityResponse converts a model into a DTO.
func NewActivityResponse(model models.ActivityLog) ActivityResponse {
	return ActivityResponse{
		ID:         model.ID,
		ActorID:    model.ActorID,
		ActorRole:  model.ActorRole,
		Action:     model.Action,
		EntityType: model.EntityType,
		EntityID:   model.EntityID,
		Metadata:   model.Metadata,
		CreatedAt:  model.CreatedAt,
	}
}

// ActivityListRequest filters the audit trail listing.
type ActivityListRequest struct {
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	ActorID    uint   `json:"actor_id"`
	Action     string `json:"action"`
	EntityType string `json:"entity_type"`
}

// ActivityListResponse pages serialized audit entries.
type ActivityListResponse struct {
	Items      []ActivityResponse `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
}
