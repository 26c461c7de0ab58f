package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/edulearn-backend/internal/data/repos"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

type Repos struct {
	User            repos.UserRepo
	Course          repos.CourseRepo
	Classroom       repos.ClassroomRepo
	Exercise        repos.ExerciseRepo
	ExerciseAnswer  repos.ExerciseAnswerRepo
	ExamDefinition  repos.ExamDefinitionRepo
	ExamQuestion    repos.ExamQuestionRepo
	Exam            repos.ExamRepo
	Enrollment      repos.EnrollmentRepo
	Comment         repos.CommentRepo
	Doubt           repos.DoubtRepo
	Newsletter      repos.NewsletterRepo
	VisitorQuestion repos.VisitorQuestionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:            repos.NewUserRepo(db, log),
		Course:          repos.NewCourseRepo(db, log),
		Classroom:       repos.NewClassroomRepo(db, log),
		Exercise:        repos.NewExerciseRepo(db, log),
		ExerciseAnswer:  repos.NewExerciseAnswerRepo(db, log),
		ExamDefinition:  repos.NewExamDefinitionRepo(db, log),
		ExamQuestion:    repos.NewExamQuestionRepo(db, log),
		Exam:            repos.NewExamRepo(db, log),
		Enrollment:      repos.NewEnrollmentRepo(db, log),
		Comment:         repos.NewCommentRepo(db, log),
		Doubt:           repos.NewDoubtRepo(db, log),
		Newsletter:      repos.NewNewsletterRepo(db, log),
		VisitorQuestion: repos.NewVisitorQuestionRepo(db, log),
	}
}
