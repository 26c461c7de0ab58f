package learning

import "time"

type ExamDefinition struct {
	ID           int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID     int64          `gorm:"not null;index;column:course_id" json:"course_id"`
	Title        string         `gorm:"not null;column:title" json:"title"`
	Description  string         `gorm:"column:description" json:"description"`
	Published    bool           `gorm:"not null;default:false;column:published" json:"published"`
	CreationDate time.Time      `gorm:"not null;column:creation_date" json:"creation_date"`
	UpdateDate   *time.Time     `gorm:"column:update_date" json:"update_date,omitempty"`
	Questions    []ExamQuestion `gorm:"foreignKey:ExamDefinitionID" json:"questions,omitempty"`
}

func (ExamDefinition) TableName() string { return "exam_definition" }
