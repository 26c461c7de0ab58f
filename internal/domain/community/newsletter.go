package community

import "time"

type NewsletterInscription struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email           string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	InscriptionDate time.Time `gorm:"not null;column:inscription_date" json:"inscription_date"`
	Active          bool      `gorm:"not null;column:active" json:"active"`
}

func (NewsletterInscription) TableName() string { return "newsletter_inscription" }
