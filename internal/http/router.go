package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/edulearn-backend/internal/http/handlers"
	httpMW "github.com/yungbote/edulearn-backend/internal/http/middleware"
	"github.com/yungbote/edulearn-backend/internal/observability"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	TracingEnabled bool
	AllowedOrigins []string
	// LocalMediaDir is served under /media when uploads are kept on disk.
	LocalMediaDir string

	AuthMiddleware *httpMW.AuthMiddleware

	AuthHandler           *httpH.AuthHandler
	UserHandler           *httpH.UserHandler
	RealtimeHandler       *httpH.RealtimeHandler
	CourseHandler         *httpH.CourseHandler
	ClassroomHandler      *httpH.ClassroomHandler
	ExerciseHandler       *httpH.ExerciseHandler
	ExamDefinitionHandler *httpH.ExamDefinitionHandler
	ExamHandler           *httpH.ExamHandler
	EnrollmentHandler     *httpH.EnrollmentHandler
	CommentHandler        *httpH.CommentHandler
	DoubtHandler          *httpH.DoubtHandler
	PublicHandler         *httpH.PublicHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readycheck", cfg.HealthHandler.ReadyCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}
	if cfg.LocalMediaDir != "" {
		r.Static("/media", cfg.LocalMediaDir)
	}

	api := r.Group("/api")
	if cfg.AuthMiddleware != nil {
		api.Use(cfg.AuthMiddleware.OptionalAuth())
	}
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}

		// Catalog (public)
		if cfg.CourseHandler != nil {
			api.GET("/courses", cfg.CourseHandler.List)
			api.GET("/categories", cfg.CourseHandler.ListCategories)
			api.GET("/courses/:id", cfg.CourseHandler.Get)
			api.GET("/courses/:id/overview", cfg.CourseHandler.Overview)
		}
		if cfg.UserHandler != nil {
			api.GET("/professors", cfg.UserHandler.ListProfessors)
			api.GET("/professors/:id", cfg.UserHandler.GetProfessor)
			api.GET("/professors/:id/courses", cfg.UserHandler.ListProfessorCourses)
		}
		if cfg.ClassroomHandler != nil {
			api.GET("/courses/:id/classrooms", cfg.ClassroomHandler.ListByCourse)
			api.GET("/classrooms/:id", cfg.ClassroomHandler.Get)
		}
		if cfg.ExamDefinitionHandler != nil {
			api.GET("/courses/:id/exam-definitions", cfg.ExamDefinitionHandler.ListPublished)
			api.GET("/exam-definitions/:id", cfg.ExamDefinitionHandler.Get)
			api.GET("/exam-definitions/:id/questions", cfg.ExamDefinitionHandler.ListQuestions)
		}
		if cfg.ExamHandler != nil {
			api.GET("/courses/:id/evaluations", cfg.ExamHandler.ListEvaluations)
		}
		if cfg.CommentHandler != nil {
			api.GET("/courses/:id/comments", cfg.CommentHandler.ListByCourse)
		}
		if cfg.DoubtHandler != nil {
			api.GET("/courses/:id/doubts", cfg.DoubtHandler.ListByCourse)
			api.GET("/doubts/:id", cfg.DoubtHandler.Get)
		}

		// Landing page (public)
		if cfg.PublicHandler != nil {
			api.POST("/newsletter/subscribe", cfg.PublicHandler.Subscribe)
			api.POST("/newsletter/unsubscribe", cfg.PublicHandler.Unsubscribe)
			api.POST("/visitor-questions", cfg.PublicHandler.Ask)
			api.GET("/visitor-questions", cfg.PublicHandler.ListQuestions)
			api.GET("/visitor-questions/:id", cfg.PublicHandler.GetQuestion)
		}
	}

	protected := api.Group("/")
	if cfg.AuthMiddleware != nil {
		protected.Use(cfg.AuthMiddleware.RequireAuth())
	}
	{
		// Realtime (SSE)
		if cfg.RealtimeHandler != nil {
			protected.GET("/sse/stream", cfg.RealtimeHandler.SSEStream)
			protected.POST("/sse/subscribe", cfg.RealtimeHandler.SSESubscribe)
			protected.POST("/sse/unsubscribe", cfg.RealtimeHandler.SSEUnsubscribe)
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.PUT("/me/password", cfg.UserHandler.ChangePassword)
			protected.PATCH("/users/:id", cfg.UserHandler.UpdateProfile)
			protected.DELETE("/users/:id", cfg.UserHandler.Delete)
		}

		// Course
		if cfg.CourseHandler != nil {
			protected.POST("/courses", cfg.CourseHandler.Create)
			protected.PUT("/courses/:id", cfg.CourseHandler.Update)
			protected.DELETE("/courses/:id", cfg.CourseHandler.Delete)
			protected.POST("/courses/:id/video", cfg.CourseHandler.UploadPresentationVideo)
		}

		// Classroom
		if cfg.ClassroomHandler != nil {
			protected.POST("/courses/:id/classrooms", cfg.ClassroomHandler.Create)
			protected.PUT("/classrooms/:id", cfg.ClassroomHandler.Update)
			protected.DELETE("/classrooms/:id", cfg.ClassroomHandler.Delete)
			protected.POST("/classrooms/:id/content", cfg.ClassroomHandler.UploadContent)
		}

		// Exercise
		if cfg.ExerciseHandler != nil {
			protected.GET("/classrooms/:id/exercises", cfg.ExerciseHandler.ListByClassroom)
			protected.POST("/classrooms/:id/exercises", cfg.ExerciseHandler.Create)
			protected.GET("/exercises/:id", cfg.ExerciseHandler.Get)
			protected.PUT("/exercises/:id", cfg.ExerciseHandler.Update)
			protected.DELETE("/exercises/:id", cfg.ExerciseHandler.Delete)
			protected.POST("/exercises/:id/answers", cfg.ExerciseHandler.SubmitAnswer)
			protected.GET("/exercises/:id/answers", cfg.ExerciseHandler.ListAnswers)
			protected.GET("/answers/:id", cfg.ExerciseHandler.GetAnswer)
			protected.POST("/answers/:id/grade", cfg.ExerciseHandler.GradeAnswer)
			protected.GET("/courses/:id/answers/ungraded", cfg.ExerciseHandler.ListUngraded)
			protected.GET("/courses/:id/answers/mine", cfg.ExerciseHandler.ListMine)
		}

		// Exam definitions and questions
		if cfg.ExamDefinitionHandler != nil {
			protected.GET("/courses/:id/exam-definitions/manage", cfg.ExamDefinitionHandler.ListForOwner)
			protected.POST("/courses/:id/exam-definitions", cfg.ExamDefinitionHandler.Create)
			protected.PUT("/exam-definitions/:id", cfg.ExamDefinitionHandler.Update)
			protected.DELETE("/exam-definitions/:id", cfg.ExamDefinitionHandler.Delete)
			protected.POST("/exam-definitions/:id/publish", cfg.ExamDefinitionHandler.Publish)
			protected.POST("/exam-definitions/:id/unpublish", cfg.ExamDefinitionHandler.Unpublish)
			protected.POST("/exam-definitions/:id/questions", cfg.ExamDefinitionHandler.AddQuestion)
			protected.PUT("/exam-questions/:id", cfg.ExamDefinitionHandler.UpdateQuestion)
			protected.DELETE("/exam-questions/:id", cfg.ExamDefinitionHandler.DeleteQuestion)
		}

		// Exams (evaluations and attempts)
		if cfg.ExamHandler != nil {
			protected.POST("/courses/:id/evaluations", cfg.ExamHandler.SubmitEvaluation)
			protected.POST("/exam-definitions/:id/attempts", cfg.ExamHandler.SubmitAttempt)
			protected.GET("/exam-definitions/:id/attempts", cfg.ExamHandler.ListAttempts)
			protected.GET("/exams/:id", cfg.ExamHandler.Get)
			protected.PUT("/exams/:id", cfg.ExamHandler.UpdateEvaluation)
			protected.DELETE("/exams/:id", cfg.ExamHandler.Delete)
			protected.GET("/me/exams", cfg.ExamHandler.ListMine)
		}

		// Enrollment
		if cfg.EnrollmentHandler != nil {
			protected.POST("/courses/:id/enroll", cfg.EnrollmentHandler.Enroll)
			protected.DELETE("/courses/:id/enroll", cfg.EnrollmentHandler.Unenroll)
			protected.GET("/courses/:id/enrolled", cfg.EnrollmentHandler.IsEnrolled)
			protected.PUT("/courses/:id/progress", cfg.EnrollmentHandler.UpdateProgress)
			protected.GET("/courses/:id/enrollments", cfg.EnrollmentHandler.ListByCourse)
			protected.GET("/me/enrollments", cfg.EnrollmentHandler.ListMine)
		}

		// Comments
		if cfg.CommentHandler != nil {
			protected.POST("/courses/:id/comments", cfg.CommentHandler.Create)
			protected.GET("/me/comments", cfg.CommentHandler.ListMine)
			protected.PUT("/comments/:id", cfg.CommentHandler.Update)
			protected.DELETE("/comments/:id", cfg.CommentHandler.Delete)
		}

		// Doubts
		if cfg.DoubtHandler != nil {
			protected.POST("/courses/:id/doubts", cfg.DoubtHandler.Create)
			protected.GET("/me/doubts", cfg.DoubtHandler.ListMine)
			protected.POST("/doubts/:id/answer", cfg.DoubtHandler.Answer)
			protected.POST("/doubts/:id/close", cfg.DoubtHandler.Close)
			protected.DELETE("/doubts/:id", cfg.DoubtHandler.Delete)
		}

		// Landing page (professors)
		if cfg.PublicHandler != nil {
			staff := protected.Group("/")
			if cfg.AuthMiddleware != nil {
				staff.Use(cfg.AuthMiddleware.RequireProfessor())
			}
			staff.GET("/newsletter", cfg.PublicHandler.ListSubscribers)
			staff.GET("/visitor-questions/unanswered", cfg.PublicHandler.ListUnanswered)
			protected.POST("/visitor-questions/:id/answer", cfg.PublicHandler.AnswerQuestion)
			protected.DELETE("/visitor-questions/:id", cfg.PublicHandler.DeleteQuestion)
		}
	}

	return r
}
