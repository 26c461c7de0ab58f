package learning

import "gorm.io/datatypes"

type Exercise struct {
	ID            int64                       `gorm:"primaryKey;autoIncrement" json:"id"`
	ClassroomID   int64                       `gorm:"not null;index;column:classroom_id" json:"classroom_id"`
	Statement     string                      `gorm:"not null;column:statement" json:"statement"`
	Type          QuestionType                `gorm:"type:varchar(32);not null;column:type" json:"type"`
	Options       datatypes.JSONSlice[string] `gorm:"column:options" json:"options"`
	CorrectAnswer *string                     `gorm:"column:correct_answer" json:"correct_answer,omitempty"`
}

func (Exercise) TableName() string { return "exercise" }

// Redacted hides the correct answer for student-facing views.
func (e Exercise) Redacted() Exercise {
	e.CorrectAnswer = nil
	return e
}
