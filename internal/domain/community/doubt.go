package community

import "time"

type DoubtStatus string

const (
	DoubtStatusOpen     DoubtStatus = "OPEN"
	DoubtStatusAnswered DoubtStatus = "ANSWERED"
	DoubtStatusClosed   DoubtStatus = "CLOSED"
)

type Doubt struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID    int64       `gorm:"not null;index;column:course_id" json:"course_id"`
	StudentID   int64       `gorm:"not null;index;column:student_id" json:"student_id"`
	Title       string      `gorm:"not null;column:title" json:"title"`
	Description string      `gorm:"column:description" json:"description"`
	Answer      *string     `gorm:"column:answer" json:"answer,omitempty"`
	AnswerHour  *time.Time  `gorm:"column:answer_hour" json:"answer_hour,omitempty"`
	ProfessorID *int64      `gorm:"index;column:professor_id" json:"professor_id,omitempty"`
	Status      DoubtStatus `gorm:"type:varchar(16);not null;default:OPEN;index;column:status" json:"status"`
	CreatedAt   time.Time   `gorm:"not null;column:created_at" json:"created_at"`

	StudentName string `gorm:"->;-:migration;column:student_name" json:"student_name,omitempty"`
}

func (Doubt) TableName() string { return "doubt" }
