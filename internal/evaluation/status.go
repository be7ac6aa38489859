// Package evaluation holds the pure derivation logic for course evaluation
// surveys: template status resolution, per-question answer aggregation and
// course-level summary assembly. Everything in this package is side-effect
// free and safe to call concurrently.
package evaluation

import "time"

// Status classifies a survey template relative to a reference date and
// whether the current viewer has already submitted a response.
type Status string

const (
	// StatusNoSchedule means the template is missing an open or close date.
	StatusNoSchedule Status = "no_schedule"
	// StatusScheduled means the template opens at a future date.
	StatusScheduled Status = "scheduled"
	// StatusOpenUnanswered means the template is open and the viewer has not responded.
	StatusOpenUnanswered Status = "open_unanswered"
	// StatusOpenAnswered means the template is open and the viewer has responded.
	StatusOpenAnswered Status = "open_answered"
	// StatusClosedUnanswered means the window has passed without a response.
	StatusClosedUnanswered Status = "closed_unanswered"
	// StatusClosedAnswered means the window has passed and the viewer responded.
	StatusClosedAnswered Status = "closed_answered"
)

// Open reports whether the status is one of the open states.
func (s Status) Open() bool {
	return s == StatusOpenUnanswered || s == StatusOpenAnswered
}

// ResolveStatus derives a template's status from its schedule. Both window
// boundaries are inclusive and compared at day granularity in the caller's
// calendar; time-of-day is discarded and no timezone conversion happens.
// The function is total: any combination of inputs maps to a status.
func ResolveStatus(today time.Time, openDate, closeDate *time.Time, hasResponded bool) Status {
	if openDate == nil || closeDate == nil {
		return StatusNoSchedule
	}

	day := dateOnly(today)
	opens := dateOnly(*openDate)
	closes := dateOnly(*closeDate)

	switch {
	case day.Before(opens):
		return StatusScheduled
	case day.After(closes):
		if hasResponded {
			return StatusClosedAnswered
		}
		return StatusClosedUnanswered
	default:
		if hasResponded {
			return StatusOpenAnswered
		}
		return StatusOpenUnanswered
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
