package learning

import (
	"time"

	"github.com/yungbote/edulearn-backend/internal/domain/user"
)

type Course struct {
	ID                   int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title                string     `gorm:"not null;column:title;index" json:"title"`
	Description          string     `gorm:"column:description" json:"description"`
	Price                float64    `gorm:"not null;default:0;column:price" json:"price"`
	Category             string     `gorm:"column:category;index" json:"category"`
	HoursLoad            int        `gorm:"not null;default:0;column:hours_load" json:"hours_load"`
	PresentationVideoURL *string    `gorm:"column:presentation_video_url" json:"presentation_video_url,omitempty"`
	ProfessorID          int64      `gorm:"not null;index;column:professor_id" json:"professor_id"`
	Professor            *user.User `gorm:"foreignKey:ProfessorID" json:"professor,omitempty"`
	CreationDate         time.Time  `gorm:"not null;column:creation_date" json:"creation_date"`
	UpdateDate           *time.Time `gorm:"column:update_date" json:"update_date,omitempty"`
}

func (Course) TableName() string { return "course" }

// OwnedBy reports whether professorID is the course's responsible professor.
func (c *Course) OwnedBy(professorID int64) bool {
	return c != nil && professorID > 0 && c.ProfessorID == professorID
}
