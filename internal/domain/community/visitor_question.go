package community

import "time"

// VisitorQuestion is asked from the public site without an account and may
// be answered once by any professor.
type VisitorQuestion struct {
	ID                     int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	VisitorName            string     `gorm:"not null;column:visitor_name" json:"visitor_name"`
	VisitorEmail           string     `gorm:"not null;column:visitor_email" json:"visitor_email"`
	QuestionText           string     `gorm:"not null;column:question_text" json:"question_text"`
	QuestionHour           time.Time  `gorm:"not null;column:question_hour" json:"question_hour"`
	Answer                 *string    `gorm:"column:answer" json:"answer,omitempty"`
	AnswerHour             *time.Time `gorm:"column:answer_hour" json:"answer_hour,omitempty"`
	ProfessorResponsibleID *int64     `gorm:"index;column:professor_responsible_id" json:"professor_responsible_id,omitempty"`
}

func (VisitorQuestion) TableName() string { return "visitor_question" }

func (q *VisitorQuestion) Answered() bool { return q != nil && q.Answer != nil }
