package learning

type Classroom struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID    int64   `gorm:"not null;index;column:course_id" json:"course_id"`
	Title       string  `gorm:"not null;column:title" json:"title"`
	Description string  `gorm:"column:description" json:"description"`
	ContentURL  *string `gorm:"column:content_url" json:"content_url,omitempty"`
	// Sequence orders classrooms for display; duplicates are allowed.
	Sequence int `gorm:"not null;default:0;column:sequence" json:"sequence"`
}

func (Classroom) TableName() string { return "classroom" }
