package services

import (
	"fmt"
	"math"
	"net/mail"
	"strings"

	types "github.com/yungbote/edulearn-backend/internal/domain"
	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
)

const (
	// MaxGrade is the top of the grading scale for answers and evaluations.
	MaxGrade = 10.0

	maxTextLen = 10000
)

func requireText(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", apperr.InvalidInputf("%s is required", field)
	}
	if len(v) > maxTextLen {
		return "", apperr.InvalidInputf("%s is too long", field)
	}
	return v, nil
}

func optionalText(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return nil
	}
	return &v
}

func requireID(field string, id int64) error {
	if id <= 0 {
		return apperr.InvalidInputf("%s must be positive", field)
	}
	return nil
}

func validProgress(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return apperr.InvalidInputf("progress must be between 0 and 1, got %v", p)
	}
	return nil
}

func validGrade(g float64) error {
	if math.IsNaN(g) || g < 0 || g > MaxGrade {
		return apperr.InvalidInputf("grade must be between 0 and %v, got %v", MaxGrade, g)
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if math.IsNaN(v) || v < 0 {
		return apperr.InvalidInputf("%s must not be negative", field)
	}
	return nil
}

// normalizeEmail trims and lowercases raw and rejects anything that is not a
// bare address.
func normalizeEmail(raw string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return "", apperr.InvalidInput("email is required")
	}
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != v {
		return "", apperr.InvalidInputf("malformed email %q", raw)
	}
	return v, nil
}

func parseQuestionType(raw types.QuestionType) (types.QuestionType, error) {
	qt, ok := types.ParseQuestionType(string(raw))
	if !ok {
		return "", apperr.InvalidInputf("unknown question type %q", raw)
	}
	return qt, nil
}

// questionBody is the shared shape of exercises and exam questions.
type questionBody struct {
	Statement     string
	Type          types.QuestionType
	Options       []string
	CorrectAnswer *string
}

// normalize validates a question and fills the true/false option pair when
// none was given.
func (q questionBody) normalize() (questionBody, error) {
	var err error
	if q.Statement, err = requireText("statement", q.Statement); err != nil {
		return q, err
	}
	if q.Type, err = parseQuestionType(q.Type); err != nil {
		return q, err
	}
	opts := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		if o = strings.TrimSpace(o); o != "" {
			opts = append(opts, o)
		}
	}
	q.Options = opts
	q.CorrectAnswer = optionalText(q.CorrectAnswer)

	switch q.Type {
	case types.QuestionTypeTrueFalse:
		if len(q.Options) == 0 {
			q.Options = []string{"true", "false"}
		}
	case types.QuestionTypeMultipleChoice:
		if len(q.Options) < 2 {
			return q, apperr.InvalidInput("multiple choice questions need at least two options")
		}
	case types.QuestionTypeEssay:
		q.Options = nil
		q.CorrectAnswer = nil
		return q, nil
	}
	if q.CorrectAnswer == nil {
		return q, apperr.InvalidInputf("%s questions need a correct answer", q.Type)
	}
	if !containsTrimmed(q.Options, *q.CorrectAnswer) {
		return q, apperr.InvalidInput(fmt.Sprintf("correct answer %q is not one of the options", *q.CorrectAnswer))
	}
	return q, nil
}

func containsTrimmed(options []string, v string) bool {
	v = strings.TrimSpace(v)
	for _, o := range options {
		if strings.TrimSpace(o) == v {
			return true
		}
	}
	return false
}
