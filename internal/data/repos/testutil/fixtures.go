package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/pkg/pointers"
)

var seq atomic.Int64

// Now is truncated so values survive a store round trip unchanged.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d-%d@example.com", prefix, time.Now().UnixNano(), seq.Add(1))
}

func SeedStudent(tb testing.TB, tx *gorm.DB, name string) *types.User {
	tb.Helper()
	u := types.User{
		Name:         name,
		Email:        uniqueEmail("student"),
		PasswordHash: "hash",
		Type:         types.UserTypeStudent,
		RegisterDate: Now(),
	}
	if err := tx.Create(&u).Error; err != nil {
		tb.Fatalf("seed student: %v", err)
	}
	return &u
}

func SeedProfessor(tb testing.TB, tx *gorm.DB, name string) *types.User {
	tb.Helper()
	u := types.User{
		Name:           name,
		Email:          uniqueEmail("professor"),
		PasswordHash:   "hash",
		Type:           types.UserTypeProfessor,
		RegisterDate:   Now(),
		Specialization: pointers.String("Mathematics"),
	}
	if err := tx.Create(&u).Error; err != nil {
		tb.Fatalf("seed professor: %v", err)
	}
	return &u
}

func SeedCourse(tb testing.TB, tx *gorm.DB, professorID int64, title, category string) *types.Course {
	tb.Helper()
	c := types.Course{
		Title:        title,
		Description:  "about " + title,
		Price:        49.9,
		Category:     category,
		HoursLoad:    20,
		ProfessorID:  professorID,
		CreationDate: Now(),
	}
	if err := tx.Omit("Professor").Create(&c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return &c
}

func SeedClassroom(tb testing.TB, tx *gorm.DB, courseID int64, title string, sequence int) *types.Classroom {
	tb.Helper()
	c := types.Classroom{CourseID: courseID, Title: title, Sequence: sequence}
	if err := tx.Create(&c).Error; err != nil {
		tb.Fatalf("seed classroom: %v", err)
	}
	return &c
}

func SeedExercise(tb testing.TB, tx *gorm.DB, classroomID int64, qt types.QuestionType, correct string) *types.Exercise {
	tb.Helper()
	e := types.Exercise{
		ClassroomID: classroomID,
		Statement:   "2 + 2 = ?",
		Type:        qt,
		Options:     []string{"3", "4", "5"},
	}
	if correct != "" {
		e.CorrectAnswer = pointers.String(correct)
	}
	if err := tx.Create(&e).Error; err != nil {
		tb.Fatalf("seed exercise: %v", err)
	}
	return &e
}

func SeedExamDefinition(tb testing.TB, tx *gorm.DB, courseID int64, title string, published bool) *types.ExamDefinition {
	tb.Helper()
	d := types.ExamDefinition{CourseID: courseID, Title: title, Published: published, CreationDate: Now()}
	if err := tx.Omit("Questions").Create(&d).Error; err != nil {
		tb.Fatalf("seed exam definition: %v", err)
	}
	return &d
}

func SeedEnrollment(tb testing.TB, tx *gorm.DB, studentID, courseID int64) *types.Enrollment {
	tb.Helper()
	e := types.Enrollment{StudentID: studentID, CourseID: courseID, EnrollmentDate: Now()}
	if err := tx.Omit("Course").Create(&e).Error; err != nil {
		tb.Fatalf("seed enrollment: %v", err)
	}
	return &e
}
