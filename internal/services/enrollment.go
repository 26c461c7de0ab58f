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

type EnrollmentService interface {
	// MakeEnroll registers a student in a course. A second call for the same
	// pair fails with a conflict and writes nothing.
	MakeEnroll(ctx context.Context, studentID, courseID int64) (*types.Enrollment, error)
	IsEnrolled(ctx context.Context, studentID, courseID int64) (bool, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*types.Enrollment, error)
	ListByCourse(ctx context.Context, professorID, courseID int64) ([]*types.Enrollment, error)
	UpdateProgress(ctx context.Context, studentID, courseID int64, progress float64) (*types.Enrollment, error)
	Unenroll(ctx context.Context, studentID, courseID int64) error
}

type enrollmentService struct {
	w              writer
	log            *logger.Logger
	userRepo       repos.UserRepo
	enrollmentRepo repos.EnrollmentRepo
	own            courseOwnership
	notify         Notifier
}

func NewEnrollmentService(
	base aggregates.BaseDeps,
	log *logger.Logger,
	userRepo repos.UserRepo,
	courseRepo repos.CourseRepo,
	enrollmentRepo repos.EnrollmentRepo,
	notify Notifier,
) EnrollmentService {
	serviceLog := log.With("service", "EnrollmentService")
	if notify == nil {
		notify = NopNotifier()
	}
	return &enrollmentService{
		w:              newWriter(base, serviceLog),
		log:            serviceLog,
		userRepo:       userRepo,
		enrollmentRepo: enrollmentRepo,
		own:            courseOwnership{courses: courseRepo},
		notify:         notify,
	}
}

func (s *enrollmentService) MakeEnroll(ctx context.Context, studentID, courseID int64) (*types.Enrollment, error) {
	var (
		out         *types.Enrollment
		professorID int64
	)
	err := s.w.do(ctx, "EnrollmentService.MakeEnroll", func(dbc dbctx.Context) error {
		if _, err := requireUser(dbc, s.userRepo, studentID, types.UserTypeStudent); err != nil {
			return err
		}
		c, err := s.own.course(dbc, courseID)
		if err != nil {
			return err
		}
		enrolled, err := s.enrollmentRepo.IsEnrolled(dbc, studentID, courseID)
		if err != nil {
			return err
		}
		if enrolled {
			return apperr.Conflict(fmt.Sprintf("student %d is already enrolled in course %d", studentID, courseID))
		}
		e := &types.Enrollment{StudentID: studentID, CourseID: courseID, EnrollmentDate: nowUTC()}
		if _, err := s.enrollmentRepo.Save(dbc, e); err != nil {
			return err
		}
		e.Course = c
		out = e
		professorID = c.ProfessorID
		return nil
	}, "student_id", studentID, "course_id", courseID)
	if err != nil {
		return nil, err
	}
	s.notify.EnrollmentCreated(out, professorID)
	return out, nil
}

func (s *enrollmentService) IsEnrolled(ctx context.Context, studentID, courseID int64) (bool, error) {
	if err := requireID("student id", studentID); err != nil {
		return false, err
	}
	if err := requireID("course id", courseID); err != nil {
		return false, err
	}
	ok, err := s.enrollmentRepo.IsEnrolled(read(ctx), studentID, courseID)
	if err != nil {
		return false, mapRead(s.log, "EnrollmentService.IsEnrolled", err, "student_id", studentID, "course_id", courseID)
	}
	return ok, nil
}

func (s *enrollmentService) ListByStudent(ctx context.Context, studentID int64) ([]*types.Enrollment, error) {
	if err := requireID("student id", studentID); err != nil {
		return nil, err
	}
	out, err := s.enrollmentRepo.ListByStudent(read(ctx), studentID)
	if err != nil {
		return nil, mapRead(s.log, "EnrollmentService.ListByStudent", err, "student_id", studentID)
	}
	return out, nil
}

func (s *enrollmentService) ListByCourse(ctx context.Context, professorID, courseID int64) ([]*types.Enrollment, error) {
	const op = "EnrollmentService.ListByCourse"
	dbc := read(ctx)
	if _, err := s.own.ownedCourse(dbc, courseID, professorID); err != nil {
		return nil, mapRead(s.log, op, err, "course_id", courseID)
	}
	out, err := s.enrollmentRepo.ListByCourse(dbc, courseID)
	if err != nil {
		return nil, mapRead(s.log, op, err, "course_id", courseID)
	}
	return out, nil
}

func (s *enrollmentService) UpdateProgress(ctx context.Context, studentID, courseID int64, progress float64) (*types.Enrollment, error) {
	if err := validProgress(progress); err != nil {
		return nil, err
	}
	var out *types.Enrollment
	err := s.w.do(ctx, "EnrollmentService.UpdateProgress", func(dbc dbctx.Context) error {
		e, err := s.enrollmentRepo.Get(dbc, studentID, courseID)
		if err != nil {
			return err
		}
		if e == nil {
			return apperr.Conflict(fmt.Sprintf("student %d is not enrolled in course %d", studentID, courseID))
		}
		ok, err := s.enrollmentRepo.UpdateProgress(dbc, studentID, courseID, progress)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Persistence("EnrollmentService.UpdateProgress", nil)
		}
		e.Progress = progress
		out = e
		return nil
	}, "student_id", studentID, "course_id", courseID)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *enrollmentService) Unenroll(ctx context.Context, studentID, courseID int64) error {
	if err := requireID("student id", studentID); err != nil {
		return err
	}
	if err := requireID("course id", courseID); err != nil {
		return err
	}
	return s.w.do(ctx, "EnrollmentService.Unenroll", func(dbc dbctx.Context) error {
		ok, err := s.enrollmentRepo.Delete(dbc, studentID, courseID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Conflict(fmt.Sprintf("student %d is not enrolled in course %d", studentID, courseID))
		}
		return nil
	}, "student_id", studentID, "course_id", courseID)
}
