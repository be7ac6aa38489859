package evaluation

import (
	"sort"
	"time"

	"github.com/hanchanwook/lms-eval-api/internal/models"
)

// TemplateState pairs a template with the viewer's responded flag.
type TemplateState struct {
	Template     models.SurveyTemplate
	HasResponded bool
}

// CourseState groups a course with the templates attached to it.
type CourseState struct {
	Course    models.Course
	Templates []TemplateState
}

// StatusCounts tallies templates by resolved status.
type StatusCounts struct {
	Scheduled        int `json:"scheduled"`
	OpenUnanswered   int `json:"open_unanswered"`
	OpenAnswered     int `json:"open_answered"`
	ClosedUnanswered int `json:"closed_unanswered"`
	ClosedAnswered   int `json:"closed_answered"`
	NoSchedule       int `json:"no_schedule"`
}

func (c *StatusCounts) add(status Status) {
	switch status {
	case StatusScheduled:
		c.Scheduled++
	case StatusOpenUnanswered:
		c.OpenUnanswered++
	case StatusOpenAnswered:
		c.OpenAnswered++
	case StatusClosedUnanswered:
		c.ClosedUnanswered++
	case StatusClosedAnswered:
		c.ClosedAnswered++
	case StatusNoSchedule:
		c.NoSchedule++
	}
}

func (c *StatusCounts) merge(other StatusCounts) {
	c.Scheduled += other.Scheduled
	c.OpenUnanswered += other.OpenUnanswered
	c.OpenAnswered += other.OpenAnswered
	c.ClosedUnanswered += other.ClosedUnanswered
	c.ClosedAnswered += other.ClosedAnswered
	c.NoSchedule += other.NoSchedule
}

// TemplateStatus is a template's resolved status within a course summary.
type TemplateStatus struct {
	TemplateID      uint   `json:"template_id"`
	TemplateGroupID string `json:"template_group_id"`
	Name            string `json:"name"`
	Status          Status `json:"status"`
}

// CourseSummary aggregates template statuses for one course.
type CourseSummary struct {
	CourseID   uint             `json:"course_id"`
	CourseName string           `json:"course_name"`
	StartDate  *time.Time       `json:"start_date"`
	Counts     StatusCounts     `json:"counts"`
	Templates  []TemplateStatus `json:"templates"`
}

// Summary is the assembled view across all courses.
type Summary struct {
	Courses []CourseSummary `json:"courses"`
	Totals  StatusCounts    `json:"totals"`
}

// Courses without a start date sort after every dated course.
var maxStartDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// Assemble resolves every template's status and rolls the results up into
// per-course and global counts. A course with no templates counts as
// no_schedule at the course level. Courses are ordered ascending by start
// date with undated courses last.
func Assemble(today time.Time, courses []CourseState) Summary {
	summaries := make([]CourseSummary, 0, len(courses))
	var totals StatusCounts

	for _, state := range courses {
		summary := CourseSummary{
			CourseID:   state.Course.ID,
			CourseName: state.Course.Name,
			StartDate:  state.Course.StartDate,
			Templates:  make([]TemplateStatus, 0, len(state.Templates)),
		}

		if len(state.Templates) == 0 {
			summary.Counts.NoSchedule++
		}

		for _, templateState := range state.Templates {
			template := templateState.Template
			status := ResolveStatus(today, template.OpenDate, template.CloseDate, templateState.HasResponded)
			summary.Counts.add(status)
			summary.Templates = append(summary.Templates, TemplateStatus{
				TemplateID:      template.ID,
				TemplateGroupID: template.TemplateGroupID,
				Name:            template.Name,
				Status:          status,
			})
		}

		totals.merge(summary.Counts)
		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return startOrMax(summaries[i].StartDate).Before(startOrMax(summaries[j].StartDate))
	})

	return Summary{Courses: summaries, Totals: totals}
}

func startOrMax(start *time.Time) time.Time {
	if start == nil {
		return maxStartDate
	}
	return dateOnly(*start)
}
