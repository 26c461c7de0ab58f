package community

import "time"

type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID  int64     `gorm:"not null;index;column:course_id" json:"course_id"`
	StudentID int64     `gorm:"not null;index;column:student_id" json:"student_id"`
	Text      string    `gorm:"not null;column:text" json:"text"`
	HourDate  time.Time `gorm:"not null;column:hour_date" json:"hour_date"`

	StudentName string `gorm:"->;-:migration;column:student_name" json:"student_name,omitempty"`
}

func (Comment) TableName() string { return "comment" }
