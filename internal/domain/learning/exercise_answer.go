package learning

import "time"

// ExerciseAnswer is a student's single submission for one exercise.
// Correct and Grade stay nil until the answer is graded.
type ExerciseAnswer struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ExerciseID  int64     `gorm:"not null;index;column:exercise_id" json:"exercise_id"`
	StudentID   int64     `gorm:"not null;index;column:student_id" json:"student_id"`
	ClassroomID int64     `gorm:"not null;index;column:classroom_id" json:"classroom_id"`
	CourseID    int64     `gorm:"not null;index;column:course_id" json:"course_id"`
	AnswerText  string    `gorm:"not null;column:answer_text" json:"answer_text"`
	SendDate    time.Time `gorm:"not null;column:send_date" json:"send_date"`
	Correct     *bool     `gorm:"column:correct" json:"correct,omitempty"`
	Grade       *float64  `gorm:"column:grade" json:"grade,omitempty"`
	Feedback    *string   `gorm:"column:feedback" json:"feedback,omitempty"`

	StudentName string `gorm:"->;-:migration;column:student_name" json:"student_name,omitempty"`
}

func (ExerciseAnswer) TableName() string { return "exercise_answer" }

func (a *ExerciseAnswer) Graded() bool { return a != nil && a.Grade != nil }
