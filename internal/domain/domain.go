package domain

import (
	"github.com/yungbote/edulearn-backend/internal/domain/community"
	"github.com/yungbote/edulearn-backend/internal/domain/learning"
	"github.com/yungbote/edulearn-backend/internal/domain/user"
)

type User = user.User
type UserType = user.Type

const (
	UserTypeStudent   = user.TypeStudent
	UserTypeProfessor = user.TypeProfessor
)

var (
	ParseUserType = user.ParseType
	NewStudent    = user.NewStudent
	NewProfessor  = user.NewProfessor
)

type Course = learning.Course
type Classroom = learning.Classroom
type Exercise = learning.Exercise
type ExerciseAnswer = learning.ExerciseAnswer
type ExamDefinition = learning.ExamDefinition
type ExamQuestion = learning.ExamQuestion
type Exam = learning.Exam
type Enrollment = learning.Enrollment
type QuestionType = learning.QuestionType

var ParseQuestionType = learning.ParseQuestionType

const (
	QuestionTypeMultipleChoice = learning.QuestionTypeMultipleChoice
	QuestionTypeTrueFalse      = learning.QuestionTypeTrueFalse
	QuestionTypeEssay          = learning.QuestionTypeEssay
)

type Comment = community.Comment
type Doubt = community.Doubt
type DoubtStatus = community.DoubtStatus
type NewsletterInscription = community.NewsletterInscription
type VisitorQuestion = community.VisitorQuestion

const (
	DoubtStatusOpen     = community.DoubtStatusOpen
	DoubtStatusAnswered = community.DoubtStatusAnswered
	DoubtStatusClosed   = community.DoubtStatusClosed
)

// All lists every persisted model in dependency order for migration.
func All() []any {
	return []any{
		&User{},
		&Course{},
		&Classroom{},
		&Exercise{},
		&ExerciseAnswer{},
		&ExamDefinition{},
		&ExamQuestion{},
		&Exam{},
		&Enrollment{},
		&Comment{},
		&Doubt{},
		&NewsletterInscription{},
		&VisitorQuestion{},
	}
}
