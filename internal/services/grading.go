package services

import (
	"strings"

	types "github.com/yungbote/edulearn-backend/internal/domain"
)

// AutoGrade scores a submission against the stored correct answer. Answers
// to auto-graded types earn full points when the trimmed texts match and
// zero otherwise; other types return nil for both so they await manual
// grading.
func AutoGrade(qt types.QuestionType, correctAnswer *string, submitted string, points float64) (correct *bool, grade *float64) {
	if !qt.AutoGraded() || correctAnswer == nil {
		return nil, nil
	}
	ok := strings.TrimSpace(submitted) == strings.TrimSpace(*correctAnswer)
	g := 0.0
	if ok {
		g = points
	}
	return &ok, &g
}
