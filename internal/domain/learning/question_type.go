package learning

import "strings"

// QuestionType is shared by exercises and exam questions.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionTypeTrueFalse      QuestionType = "TRUE_FALSE"
	QuestionTypeEssay          QuestionType = "ESSAY"
)

func ParseQuestionType(raw string) (QuestionType, bool) {
	t := QuestionType(strings.ToUpper(strings.TrimSpace(raw)))
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeTrueFalse, QuestionTypeEssay:
		return t, true
	}
	return t, false
}

// AutoGraded reports whether answers can be scored by comparing against a
// stored correct answer.
func (t QuestionType) AutoGraded() bool {
	return t == QuestionTypeMultipleChoice || t == QuestionTypeTrueFalse
}
