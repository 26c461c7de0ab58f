package learning

import "time"

// Exam records either a course evaluation (ExamDefinitionID nil) or an
// attempt at a published exam definition.
type Exam struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID         int64     `gorm:"not null;index;column:course_id" json:"course_id"`
	ExamDefinitionID *int64    `gorm:"index;column:exam_definition_id" json:"exam_definition_id,omitempty"`
	StudentID        int64     `gorm:"not null;index;column:student_id" json:"student_id"`
	Grade            *float64  `gorm:"column:grade" json:"grade,omitempty"`
	Comment          *string   `gorm:"column:comment" json:"comment,omitempty"`
	HourDate         time.Time `gorm:"not null;column:hour_date" json:"hour_date"`
	Submitted        bool      `gorm:"not null;default:false;column:submitted" json:"submitted"`

	StudentName string `gorm:"->;-:migration;column:student_name" json:"student_name,omitempty"`
}

func (Exam) TableName() string { return "exam" }

func (e *Exam) IsCourseEvaluation() bool { return e != nil && e.ExamDefinitionID == nil }
