package learning

import "time"

// Enrollment is the students_courses junction row. The composite primary
// key makes (student_id, course_id) unique.
type Enrollment struct {
	StudentID      int64     `gorm:"primaryKey;autoIncrement:false;column:student_id" json:"student_id"`
	CourseID       int64     `gorm:"primaryKey;autoIncrement:false;index;column:course_id" json:"course_id"`
	EnrollmentDate time.Time `gorm:"not null;column:enrollment_date" json:"enrollment_date"`
	Progress       float64   `gorm:"not null;default:0;column:progress" json:"progress"`
	Course         *Course   `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Enrollment) TableName() string { return "students_courses" }
