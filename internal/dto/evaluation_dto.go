package dto

import "github.com/hanchanwook/lms-eval-api/internal/evaluation"

// CourseSummaryResponse is the assembled evaluation overview across courses
// for one viewer.
type CourseSummaryResponse struct {
	Courses  []evaluation.CourseSummary `json:"courses"`
	Totals   evaluation.StatusCounts    `json:"totals"`
	CacheHit bool                       `json:"cache_hit"`
}

// TemplateStatsResponse carries per-question aggregates for one template.
type TemplateStatsResponse struct {
	TemplateID   uint                       `json:"template_id"`
	TemplateName string                     `json:"template_name"`
	Questions    []evaluation.QuestionStats `json:"questions"`
	CacheHit     bool                       `json:"cache_hit"`
}
