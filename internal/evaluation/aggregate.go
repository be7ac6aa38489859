package evaluation

import (
	"sort"
	"time"

	"github.com/hanchanwook/lms-eval-api/internal/models"
)

// TextAnswer is a free-text response attributed to a responder.
type TextAnswer struct {
	ResponderID uint      `json:"responder_id"`
	Value       string    `json:"value"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// QuestionStats summarises all answers to a single question.
type QuestionStats struct {
	QuestionID    uint                `json:"question_id"`
	QuestionNum   int                 `json:"question_num"`
	Text          string              `json:"text"`
	Kind          models.QuestionKind `json:"kind"`
	ResponseCount int                 `json:"response_count"`
	MeanScore     float64             `json:"mean_score"`
	TextAnswers   []TextAnswer        `json:"text_answers"`
}

// Aggregate computes per-question statistics for a template's answers.
// Questions are reported in template order (ascending QuestionNum, stable
// for ties). A responder counts at most once per question; when duplicates
// exist the first occurrence wins. Answers referencing a question that is
// not part of the template contribute nothing. Inputs are never mutated.
func Aggregate(questions []models.Question, answers []models.Answer) []QuestionStats {
	ordered := make([]models.Question, len(questions))
	copy(ordered, questions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].QuestionNum < ordered[j].QuestionNum
	})

	known := make(map[uint]struct{}, len(ordered))
	for _, question := range ordered {
		known[question.ID] = struct{}{}
	}

	type answerKey struct {
		questionID  uint
		responderID uint
	}

	byQuestion := make(map[uint][]models.Answer, len(ordered))
	seen := make(map[answerKey]struct{}, len(answers))
	for _, answer := range answers {
		if _, ok := known[answer.QuestionID]; !ok {
			continue
		}
		key := answerKey{questionID: answer.QuestionID, responderID: answer.ResponderID}
		if _, duplicate := seen[key]; duplicate {
			continue
		}
		seen[key] = struct{}{}
		byQuestion[answer.QuestionID] = append(byQuestion[answer.QuestionID], answer)
	}

	stats := make([]QuestionStats, 0, len(ordered))
	for _, question := range ordered {
		matched := byQuestion[question.ID]
		stat := QuestionStats{
			QuestionID:    question.ID,
			QuestionNum:   question.QuestionNum,
			Text:          question.Text,
			Kind:          question.Kind,
			ResponseCount: len(matched),
			TextAnswers:   []TextAnswer{},
		}

		switch question.Kind {
		case models.QuestionKindRating:
			var total float64
			var counted int
			for _, answer := range matched {
				if answer.Rating != nil {
					total += float64(*answer.Rating)
					counted++
				}
			}
			if counted > 0 {
				stat.MeanScore = total / float64(counted)
			}
		case models.QuestionKindText:
			texts := make([]TextAnswer, 0, len(matched))
			for _, answer := range matched {
				texts = append(texts, TextAnswer{
					ResponderID: answer.ResponderID,
					Value:       answer.Text,
					SubmittedAt: answer.SubmittedAt,
				})
			}
			stat.TextAnswers = texts
		}

		stats = append(stats, stat)
	}

	return stats
}
