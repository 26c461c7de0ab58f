package user

import (
	"strings"
	"time"
)

// Type discriminates the User variants.
type Type string

const (
	TypeStudent   Type = "STUDENT"
	TypeProfessor Type = "PROFESSOR"
)

func (t Type) Valid() bool {
	return t == TypeStudent || t == TypeProfessor
}

// ParseType accepts the discriminant case-insensitively.
func ParseType(raw string) (Type, bool) {
	t := Type(strings.ToUpper(strings.TrimSpace(raw)))
	return t, t.Valid()
}

// User is stored in a single table. Specialization is only populated for
// professors; Type never changes after creation.
type User struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string    `gorm:"not null;column:name" json:"name"`
	Email          string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	PasswordHash   string    `gorm:"not null;column:password_hash" json:"-"`
	Type           Type      `gorm:"type:varchar(16);not null;index;column:type" json:"type"`
	RegisterDate   time.Time `gorm:"not null;column:register_date" json:"register_date"`
	Specialization *string   `gorm:"column:specialization" json:"specialization,omitempty"`
}

func (User) TableName() string { return "user" }

func (u *User) IsProfessor() bool { return u != nil && u.Type == TypeProfessor }
func (u *User) IsStudent() bool   { return u != nil && u.Type == TypeStudent }

func NewStudent(name, email, passwordHash string) *User {
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Type:         TypeStudent,
		RegisterDate: time.Now().UTC(),
	}
}

func NewProfessor(name, email, passwordHash, specialization string) *User {
	u := &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Type:         TypeProfessor,
		RegisterDate: time.Now().UTC(),
	}
	if s := strings.TrimSpace(specialization); s != "" {
		u.Specialization = &s
	}
	return u
}
