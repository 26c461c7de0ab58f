package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/edulearn-backend/internal/data/aggregates"
	"github.com/yungbote/edulearn-backend/internal/observability"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
	"github.com/yungbote/edulearn-backend/internal/platform/password"
	"github.com/yungbote/edulearn-backend/internal/services"
)

type Services struct {
	Auth            services.AuthService
	User            services.UserService
	Course          services.CourseService
	Classroom       services.ClassroomService
	Exercise        services.ExerciseService
	ExerciseAnswer  services.ExerciseAnswerService
	ExamDefinition  services.ExamDefinitionService
	ExamQuestion    services.ExamQuestionService
	Exam            services.ExamService
	Enrollment      services.EnrollmentService
	Comment         services.CommentService
	Doubt           services.DoubtService
	Newsletter      services.NewsletterService
	VisitorQuestion services.VisitorQuestionService
	Media           services.MediaService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, store services.ObjectStore, emit services.SSEEmitter, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")
	base := aggregates.BaseDeps{
		DB:    db,
		Hooks: aggregates.NewObservabilityHooks(metrics),
	}.WithDefaults()
	notify := services.NewNotifier(emit)
	hasher := password.NewBcryptHasher(cfg.BcryptCost)
	dependents := services.Dependents{
		Courses:     r.Course,
		Classrooms:  r.Classroom,
		Exercises:   r.Exercise,
		Answers:     r.ExerciseAnswer,
		Definitions: r.ExamDefinition,
		Questions:   r.ExamQuestion,
		Exams:       r.Exam,
		Enrollments: r.Enrollment,
		Comments:    r.Comment,
		Doubts:      r.Doubt,
		Visitors:    r.VisitorQuestion,
	}

	return Services{
		Auth:            services.NewAuthService(base, log, r.User, hasher, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		User:            services.NewUserService(base, log, r.User, hasher, dependents),
		Course:          services.NewCourseService(base, log, r.User, r.Course, r.Classroom, r.ExamDefinition, r.Exam, r.Enrollment, dependents),
		Classroom:       services.NewClassroomService(base, log, r.Course, r.Classroom, dependents),
		Exercise:        services.NewExerciseService(base, log, r.Course, r.Classroom, r.Exercise, dependents),
		ExerciseAnswer:  services.NewExerciseAnswerService(base, log, r.User, r.Course, r.Classroom, r.Exercise, r.ExerciseAnswer, r.Enrollment, notify),
		ExamDefinition:  services.NewExamDefinitionService(base, log, r.Course, r.ExamDefinition, r.ExamQuestion, notify, dependents),
		ExamQuestion:    services.NewExamQuestionService(base, log, r.Course, r.ExamDefinition, r.ExamQuestion),
		Exam:            services.NewExamService(base, log, r.User, r.Course, r.ExamDefinition, r.ExamQuestion, r.Exam, r.Enrollment),
		Enrollment:      services.NewEnrollmentService(base, log, r.User, r.Course, r.Enrollment, notify),
		Comment:         services.NewCommentService(base, log, r.User, r.Course, r.Comment, r.Enrollment, notify),
		Doubt:           services.NewDoubtService(base, log, r.User, r.Course, r.Doubt, r.Enrollment, notify),
		Newsletter:      services.NewNewsletterService(base, log, r.Newsletter),
		VisitorQuestion: services.NewVisitorQuestionService(base, log, r.User, r.VisitorQuestion, notify),
		Media:           services.NewMediaService(base, log, store, r.Course, r.Classroom),
	}
}
