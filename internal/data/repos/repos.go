package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/edulearn-backend/internal/data/repos/community"
	"github.com/yungbote/edulearn-backend/internal/data/repos/learning"
	"github.com/yungbote/edulearn-backend/internal/data/repos/user"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type CourseRepo = learning.CourseRepo
type ClassroomRepo = learning.ClassroomRepo
type ExerciseRepo = learning.ExerciseRepo
type ExerciseAnswerRepo = learning.ExerciseAnswerRepo
type ExamDefinitionRepo = learning.ExamDefinitionRepo
type ExamQuestionRepo = learning.ExamQuestionRepo
type ExamRepo = learning.ExamRepo
type EnrollmentRepo = learning.EnrollmentRepo

type CommentRepo = community.CommentRepo
type DoubtRepo = community.DoubtRepo
type NewsletterRepo = community.NewsletterRepo
type VisitorQuestionRepo = community.VisitorQuestionRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return learning.NewCourseRepo(db, baseLog)
}
func NewClassroomRepo(db *gorm.DB, baseLog *logger.Logger) ClassroomRepo {
	return learning.NewClassroomRepo(db, baseLog)
}
func NewExerciseRepo(db *gorm.DB, baseLog *logger.Logger) ExerciseRepo {
	return learning.NewExerciseRepo(db, baseLog)
}
func NewExerciseAnswerRepo(db *gorm.DB, baseLog *logger.Logger) ExerciseAnswerRepo {
	return learning.NewExerciseAnswerRepo(db, baseLog)
}
func NewExamDefinitionRepo(db *gorm.DB, baseLog *logger.Logger) ExamDefinitionRepo {
	return learning.NewExamDefinitionRepo(db, baseLog)
}
func NewExamQuestionRepo(db *gorm.DB, baseLog *logger.Logger) ExamQuestionRepo {
	return learning.NewExamQuestionRepo(db, baseLog)
}
func NewExamRepo(db *gorm.DB, baseLog *logger.Logger) ExamRepo {
	return learning.NewExamRepo(db, baseLog)
}
func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	return learning.NewEnrollmentRepo(db, baseLog)
}

func NewCommentRepo(db *gorm.DB, baseLog *logger.Logger) CommentRepo {
	return community.NewCommentRepo(db, baseLog)
}
func NewDoubtRepo(db *gorm.DB, baseLog *logger.Logger) DoubtRepo {
	return community.NewDoubtRepo(db, baseLog)
}
func NewNewsletterRepo(db *gorm.DB, baseLog *logger.Logger) NewsletterRepo {
	return community.NewNewsletterRepo(db, baseLog)
}
func NewVisitorQuestionRepo(db *gorm.DB, baseLog *logger.Logger) VisitorQuestionRepo {
	return community.NewVisitorQuestionRepo(db, baseLog)
}
