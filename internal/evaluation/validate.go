package evaluation

import (
	"errors"
	"fmt"
	"time"

	"github.com/hanchanwook/lms-eval-api/internal/models"
)

// The resolver and aggregator are deliberately permissive: missing dates map
// to no_schedule, unknown questions are dropped and duplicates collapse.
// These validators form the optional strict pass a caller can run before
// feeding data through, so malformed input can be surfaced instead of shaped.

var (
	// ErrScheduleInverted indicates a close date earlier than the open date.
	ErrScheduleInverted = errors.New("close date precedes open date")
	// ErrUnknownQuestionKind indicates a question kind outside rating/text.
	ErrUnknownQuestionKind = errors.New("unknown question kind")
	// ErrUnknownQuestion indicates an answer referencing a question not in the template.
	ErrUnknownQuestion = errors.New("answer references unknown question")
	// ErrRatingOutOfRange indicates a rating value outside the 1-5 scale.
	ErrRatingOutOfRange = errors.New("rating outside 1-5 scale")
	// ErrKindMismatch indicates an answer value that does not match the question kind.
	ErrKindMismatch = errors.New("answer value does not match question kind")
	// ErrDuplicateAnswer indicates two answers from one responder to one question.
	ErrDuplicateAnswer = errors.New("duplicate answer for question and responder")
)

// ValidateSchedule rejects inverted windows. Missing boundaries are fine;
// they resolve to no_schedule.
func ValidateSchedule(openDate, closeDate *time.Time) error {
	if openDate == nil || closeDate == nil {
		return nil
	}
	if dateOnly(*closeDate).Before(dateOnly(*openDate)) {
		return ErrScheduleInverted
	}
	return nil
}

// ValidateQuestions rejects questions with an unsupported kind.
func ValidateQuestions(questions []models.Question) error {
	for _, question := range questions {
		if !question.Kind.Valid() {
			return fmt.Errorf("question %d: %w", question.ID, ErrUnknownQuestionKind)
		}
	}
	return nil
}

// ValidateAnswers checks a submission batch against the template's questions:
// every answer must reference a known question, carry a value matching the
// question's kind, stay within the rating scale and appear at most once per
// (question, responder) pair.
func ValidateAnswers(questions []models.Question, answers []models.Answer) error {
	byID := make(map[uint]models.Question, len(questions))
	for _, question := range questions {
		byID[question.ID] = question
	}

	type answerKey struct {
		questionID  uint
		responderID uint
	}
	seen := make(map[answerKey]struct{}, len(answers))

	for _, answer := range answers {
		question, ok := byID[answer.QuestionID]
		if !ok {
			return fmt.Errorf("question %d: %w", answer.QuestionID, ErrUnknownQuestion)
		}

		key := answerKey{questionID: answer.QuestionID, responderID: answer.ResponderID}
		if _, duplicate := seen[key]; duplicate {
			return fmt.Errorf("question %d responder %d: %w", answer.QuestionID, answer.ResponderID, ErrDuplicateAnswer)
		}
		seen[key] = struct{}{}

		switch question.Kind {
		case models.QuestionKindRating:
			if answer.Rating == nil {
				return fmt.Errorf("question %d: %w", question.ID, ErrKindMismatch)
			}
			if *answer.Rating < 1 || *answer.Rating > 5 {
				return fmt.Errorf("question %d: %w", question.ID, ErrRatingOutOfRange)
			}
		case models.QuestionKindText:
			if answer.Rating != nil {
				return fmt.Errorf("question %d: %w", question.ID, ErrKindMismatch)
			}
		default:
			return fmt.Errorf("question %d: %w", question.ID, ErrUnknownQuestionKind)
		}
	}

	return nil
}
