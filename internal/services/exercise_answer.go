package services

import (
	"context"
	"fmt"

	"github.com/yungbote/edulearn-backend/internal/data/aggregates"
	"github.com/yungbote/edulearn-backend/internal/data/repos"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

type ExerciseAnswerService interface {
	// Submit records a student's only answer to an exercise and grades it
	// immediately when the exercise type allows.
	Submit(ctx context.Context, studentID, exerciseID int64, answerText string) (*types.ExerciseAnswer, error)
	Grade(ctx context.Context, professorID, answerID int64, correct bool, grade float64, feedback *string) (*types.ExerciseAnswer, error)

	GetByID(ctx context.Context, actingUserID, id int64) (*types.ExerciseAnswer, error)
	ListByExercise(ctx context.Context, professorID, exerciseID int64) ([]*types.ExerciseAnswer, error)
	ListUngraded(ctx context.Context, professorID, courseID int64) ([]*types.ExerciseAnswer, error)
	ListMine(ctx context.Context, studentID, courseID int64) ([]*types.ExerciseAnswer, error)
}

type exerciseAnswerService struct {
	w              writer
	log            *logger.Logger
	userRepo       repos.UserRepo
	answerRepo     repos.ExerciseAnswerRepo
	enrollmentRepo repos.EnrollmentRepo
	own            courseOwnership
	notify         Notifier
}

func NewExerciseAnswerService(
	base aggregates.BaseDeps,
	log *logger.Logger,
	userRepo repos.UserRepo,
	courseRepo repos.CourseRepo,
	classroomRepo repos.ClassroomRepo,
	exerciseRepo repos.ExerciseRepo,
	answerRepo repos.ExerciseAnswerRepo,
	enrollmentRepo repos.EnrollmentRepo,
	notify Notifier,
) ExerciseAnswerService {
	serviceLog := log.With("service", "ExerciseAnswerService")
	if notify == nil {
		notify = NopNotifier()
	}
	return &exerciseAnswerService{
		w:              newWriter(base, serviceLog),
		log:            serviceLog,
		userRepo:       userRepo,
		answerRepo:     answerRepo,
		enrollmentRepo: enrollmentRepo,
		own:            courseOwnership{courses: courseRepo, classrooms: classroomRepo, exercises: exerciseRepo},
		notify:         notify,
	}
}

func (s *exerciseAnswerService) Submit(ctx context.Context, studentID, exerciseID int64, answerText string) (*types.ExerciseAnswer, error) {
	text, err := requireText("answer", answerText)
	if err != nil {
		return nil, err
	}
	var out *types.ExerciseAnswer
	err = s.w.do(ctx, "ExerciseAnswerService.Submit", func(dbc dbctx.Context) error {
		if _, err := requireUser(dbc, s.userRepo, studentID, types.UserTypeStudent); err != nil {
			return err
		}
		ex, cl, c, err := s.own.exercise(dbc, exerciseID)
		if err != nil {
			return err
		}
		if err := requireEnrolled(dbc, s.enrollmentRepo, studentID, c.ID); err != nil {
			return err
		}
		prev, err := s.answerRepo.GetByStudentAndExercise(dbc, studentID, exerciseID)
		if err != nil {
			return err
		}
		if prev != nil {
			return apperr.Conflict(fmt.Sprintf("student %d already answered exercise %d", studentID, exerciseID))
		}
		a := &types.ExerciseAnswer{
			ExerciseID:  ex.ID,
			StudentID:   studentID,
			ClassroomID: cl.ID,
			CourseID:    c.ID,
			AnswerText:  text,
			SendDate:    nowUTC(),
		}
		a.Correct, a.Grade = AutoGrade(ex.Type, ex.CorrectAnswer, text, MaxGrade)
		if _, err := s.answerRepo.Save(dbc, a); err != nil {
			return err
		}
		out = a
		return nil
	}, "student_id", studentID, "exercise_id", exerciseID)
	if err != nil {
		return nil, err
	}
	if out.Graded() {
		s.notify.AnswerGraded(out)
	}
	return out, nil
}

func (s *exerciseAnswerService) Grade(ctx context.Context, professorID, answerID int64, correct bool, grade float64, feedback *string) (*types.ExerciseAnswer, error) {
	if err := requireID("answer id", answerID); err != nil {
		return nil, err
	}
	if err := validGrade(grade); err != nil {
		return nil, err
	}
	feedback = optionalText(feedback)
	var out *types.ExerciseAnswer
	err := s.w.do(ctx, "ExerciseAnswerService.Grade", func(dbc dbctx.Context) error {
		a, err := s.answerRepo.GetByID(dbc, answerID)
		if err != nil {
			return err
		}
		if a == nil {
			return apperr.NotFound("exercise answer", answerID)
		}
		if _, err := s.own.ownedCourse(dbc, a.CourseID, professorID); err != nil {
			return err
		}
		ok, err := s.answerRepo.Grade(dbc, answerID, correct, grade, feedback)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Persistence("ExerciseAnswerService.Grade", nil)
		}
		a.Correct = &correct
		a.Grade = &grade
		a.Feedback = feedback
		out = a
		return nil
	}, "answer_id", answerID, "professor_id", professorID)
	if err != nil {
		return nil, err
	}
	s.notify.AnswerGraded(out)
	return out, nil
}

func (s *exerciseAnswerService) GetByID(ctx context.Context, actingUserID, id int64) (*types.ExerciseAnswer, error) {
	const op = "ExerciseAnswerService.GetByID"
	if err := requireID("answer id", id); err != nil {
		return nil, err
	}
	dbc := read(ctx)
	a, err := s.answerRepo.GetByID(dbc, id)
	if err == nil && a == nil {
		err = apperr.NotFound("exercise answer", id)
	}
	if err != nil {
		return nil, mapRead(s.log, op, err, "answer_id", id)
	}
	if a.StudentID == actingUserID {
		return a, nil
	}
	if _, err := s.own.ownedCourse(dbc, a.CourseID, actingUserID); err != nil {
		return nil, mapRead(s.log, op, err, "answer_id", id)
	}
	return a, nil
}

func (s *exerciseAnswerService) ListByExercise(ctx context.Context, professorID, exerciseID int64) ([]*types.ExerciseAnswer, error) {
	const op = "ExerciseAnswerService.ListByExercise"
	dbc := read(ctx)
	if _, _, err := s.own.ownedExercise(dbc, exerciseID, professorID); err != nil {
		return nil, mapRead(s.log, op, err, "exercise_id", exerciseID)
	}
	out, err := s.answerRepo.ListByExercise(dbc, exerciseID)
	if err != nil {
		return nil, mapRead(s.log, op, err, "exercise_id", exerciseID)
	}
	return out, nil
}

func (s *exerciseAnswerService) ListUngraded(ctx context.Context, professorID, courseID int64) ([]*types.ExerciseAnswer, error) {
	const op = "ExerciseAnswerService.ListUngraded"
	dbc := read(ctx)
	if _, err := s.own.ownedCourse(dbc, courseID, professorID); err != nil {
		return nil, mapRead(s.log, op, err, "course_id", courseID)
	}
	out, err := s.answerRepo.ListUngradedByCourse(dbc, courseID)
	if err != nil {
		return nil, mapRead(s.log, op, err, "course_id", courseID)
	}
	return out, nil
}

func (s *exerciseAnswerService) ListMine(ctx context.Context, studentID, courseID int64) ([]*types.ExerciseAnswer, error) {
	if err := requireID("student id", studentID); err != nil {
		return nil, err
	}
	if err := requireID("course id", courseID); err != nil {
		return nil, err
	}
	out, err := s.answerRepo.ListByStudentAndCourse(read(ctx), studentID, courseID)
	if err != nil {
		return nil, mapRead(s.log, "ExerciseAnswerService.ListMine", err, "student_id", studentID, "course_id", courseID)
	}
	return out, nil
}
