package learning

import "gorm.io/datatypes"

type ExamQuestion struct {
	ID               int64                       `gorm:"primaryKey;autoIncrement" json:"id"`
	ExamDefinitionID int64                       `gorm:"not null;index;column:exam_definition_id" json:"exam_definition_id"`
	Statement        string                      `gorm:"not null;column:statement" json:"statement"`
	Type             QuestionType                `gorm:"type:varchar(32);not null;column:type" json:"type"`
	Options          datatypes.JSONSlice[string] `gorm:"column:options" json:"options"`
	CorrectAnswer    *string                     `gorm:"column:correct_answer" json:"correct_answer,omitempty"`
	// Grade is the number of points the question is worth.
	Grade    float64 `gorm:"not null;default:0;column:grade" json:"grade"`
	Sequence int     `gorm:"not null;default:0;column:sequence" json:"sequence"`
}

func (ExamQuestion) TableName() string { return "exam_question" }

// Redacted hides the correct answer for student-facing views.
func (q ExamQuestion) Redacted() ExamQuestion {
	q.CorrectAnswer = nil
	return q
}
