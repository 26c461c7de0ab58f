package app

import (
	"github.com/yungbote/edulearn-backend/internal/http"
	httpH "github.com/yungbote/edulearn-backend/internal/http/handlers"
	httpMW "github.com/yungbote/edulearn-backend/internal/http/middleware"
	"github.com/yungbote/edulearn-backend/internal/observability"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
	"github.com/yungbote/edulearn-backend/internal/realtime"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health         *httpH.HealthHandler
	Auth           *httpH.AuthHandler
	User           *httpH.UserHandler
	Realtime       *httpH.RealtimeHandler
	Course         *httpH.CourseHandler
	Classroom      *httpH.ClassroomHandler
	Exercise       *httpH.ExerciseHandler
	ExamDefinition *httpH.ExamDefinitionHandler
	Exam           *httpH.ExamHandler
	Enrollment     *httpH.EnrollmentHandler
	Comment        *httpH.CommentHandler
	Doubt          *httpH.DoubtHandler
	Public         *httpH.PublicHandler
}

func wireHandlers(log *logger.Logger, services Services, hub *realtime.SSEHub, metrics *observability.Metrics, checks map[string]httpH.Pinger) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:         httpH.NewHealthHandler(checks),
		Auth:           httpH.NewAuthHandler(services.Auth),
		User:           httpH.NewUserHandler(services.User, services.Course),
		Realtime:       httpH.NewRealtimeHandler(log, hub, metrics),
		Course:         httpH.NewCourseHandler(services.Course, services.Media),
		Classroom:      httpH.NewClassroomHandler(services.Classroom, services.Media),
		Exercise:       httpH.NewExerciseHandler(services.Exercise, services.ExerciseAnswer),
		ExamDefinition: httpH.NewExamDefinitionHandler(services.ExamDefinition, services.ExamQuestion),
		Exam:           httpH.NewExamHandler(services.Exam),
		Enrollment:     httpH.NewEnrollmentHandler(services.Enrollment),
		Comment:        httpH.NewCommentHandler(services.Comment),
		Doubt:          httpH.NewDoubtHandler(services.Doubt),
		Public:         httpH.NewPublicHandler(services.Newsletter, services.VisitorQuestion),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *http.Server {
	rc := http.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		ServiceName:    cfg.Otel.ServiceName,
		TracingEnabled: cfg.Otel.Enabled,
		AllowedOrigins: cfg.AllowedOrigins,

		AuthMiddleware: middleware.Auth,

		AuthHandler:           handlers.Auth,
		UserHandler:           handlers.User,
		RealtimeHandler:       handlers.Realtime,
		CourseHandler:         handlers.Course,
		ClassroomHandler:      handlers.Classroom,
		ExerciseHandler:       handlers.Exercise,
		ExamDefinitionHandler: handlers.ExamDefinition,
		ExamHandler:           handlers.Exam,
		EnrollmentHandler:     handlers.Enrollment,
		CommentHandler:        handlers.Comment,
		DoubtHandler:          handlers.Doubt,
		PublicHandler:         handlers.Public,
		HealthHandler:         handlers.Health,
	}
	if normalizeStorageMode(cfg.ObjectStorageMode) == storageModeLocal {
		rc.LocalMediaDir = cfg.LocalMediaDir
	}
	return http.NewServer(rc)
}
