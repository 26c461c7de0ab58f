package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/edulearn-backend/internal/data/aggregates"
	"github.com/yungbote/edulearn-backend/internal/data/repos"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

type DoubtService interface {
	// Create opens a doubt; the student must be enrolled in the course.
	Create(ctx context.Context, courseID, studentID int64, title, description string) (*types.Doubt, error)
	GetByID(ctx context.Context, id int64) (*types.Doubt, error)
	ListByCourse(ctx context.Context, courseID int64, status types.DoubtStatus) ([]*types.Doubt, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*types.Doubt, error)

	// Answer moves an OPEN doubt to ANSWERED. Only the course's professor
	// may answer, and only once.
	Answer(ctx context.Context, professorID, id int64, answer string) (*types.Doubt, error)
	// Close is terminal and allowed to the asking student or the course's
	// professor. Closing a closed doubt succeeds without a write.
	Close(ctx context.Context, actingUserID, id int64) (*types.Doubt, error)
	Delete(ctx context.Context, actingUserID, id int64) error
}

type doubtService struct {
	w              writer
	log            *logger.Logger
	userRepo       repos.UserRepo
	doubtRepo      repos.DoubtRepo
	enrollmentRepo repos.EnrollmentRepo
	own            courseOwnership
	notify         Notifier
}

func NewDoubtService(
	base aggregates.BaseDeps,
	log *logger.Logger,
	userRepo repos.UserRepo,
	courseRepo repos.CourseRepo,
	doubtRepo repos.DoubtRepo,
	enrollmentRepo repos.EnrollmentRepo,
	notify Notifier,
) DoubtService {
	serviceLog := log.With("service", "DoubtService")
	if notify == nil {
		notify = NopNotifier()
	}
	return &doubtService{
		w:              newWriter(base, serviceLog),
		log:            serviceLog,
		userRepo:       userRepo,
		doubtRepo:      doubtRepo,
		enrollmentRepo: enrollmentRepo,
		own:            courseOwnership{courses: courseRepo},
		notify:         notify,
	}
}

func (s *doubtService) Create(ctx context.Context, courseID, studentID int64, title, description string) (*types.Doubt, error) {
	title, err := requireText("title", title)
	if err != nil {
		return nil, err
	}
	description = strings.TrimSpace(description)
	var (
		out         *types.Doubt
		professorID int64
	)
	err = s.w.do(ctx, "DoubtService.Create", func(dbc dbctx.Context) error {
		student, err := requireUser(dbc, s.userRepo, studentID, types.UserTypeStudent)
		if err != nil {
			return err
		}
		c, err := s.own.course(dbc, courseID)
		if err != nil {
			return err
		}
		if err := requireEnrolled(dbc, s.enrollmentRepo, studentID, courseID); err != nil {
			return err
		}
		d := &types.Doubt{
			CourseID:    courseID,
			StudentID:   studentID,
			Title:       title,
			Description: description,
			Status:      types.DoubtStatusOpen,
			CreatedAt:   nowUTC(),
		}
		if _, err := s.doubtRepo.Save(dbc, d); err != nil {
			return err
		}
		d.StudentName = student.Name
		out = d
		professorID = c.ProfessorID
		return nil
	}, "course_id", courseID, "student_id", studentID)
	if err != nil {
		return nil, err
	}
	s.notify.DoubtCreated(out, professorID)
	return out, nil
}

func (s *doubtService) load(dbc dbctx.Context, id int64) (*types.Doubt, error) {
	if err := requireID("doubt id", id); err != nil {
		return nil, err
	}
	d, err := s.doubtRepo.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.NotFound("doubt", id)
	}
	return d, nil
}

func (s *doubtService) GetByID(ctx context.Context, id int64) (*types.Doubt, error) {
	d, err := s.load(read(ctx), id)
	if err != nil {
		return nil, mapRead(s.log, "DoubtService.GetByID", err, "doubt_id", id)
	}
	return d, nil
}

func (s *doubtService) ListByCourse(ctx context.Context, courseID int64, status types.DoubtStatus) ([]*types.Doubt, error) {
	const op = "DoubtService.ListByCourse"
	status = types.DoubtStatus(strings.ToUpper(strings.TrimSpace(string(status))))
	switch status {
	case "", types.DoubtStatusOpen, types.DoubtStatusAnswered, types.DoubtStatusClosed:
	default:
		return nil, apperr.InvalidInputf("unknown doubt status %q", status)
	}
	dbc := read(ctx)
	if _, err := s.own.course(dbc, courseID); err != nil {
		return nil, mapRead(s.log, op, err, "course_id", courseID)
	}
	out, err := s.doubtRepo.ListByCourse(dbc, courseID, status)
	if err != nil {
		return nil, mapRead(s.log, op, err, "course_id", courseID)
	}
	return out, nil
}

func (s *doubtService) ListByStudent(ctx context.Context, studentID int64) ([]*types.Doubt, error) {
	if err := requireID("student id", studentID); err != nil {
		return nil, err
	}
	out, err := s.doubtRepo.ListByStudent(read(ctx), studentID)
	if err != nil {
		return nil, mapRead(s.log, "DoubtService.ListByStudent", err, "student_id", studentID)
	}
	return out, nil
}

func (s *doubtService) Answer(ctx context.Context, professorID, id int64, answer string) (*types.Doubt, error) {
	answer, err := requireText("answer", answer)
	if err != nil {
		return nil, err
	}
	var out *types.Doubt
	err = s.w.do(ctx, "DoubtService.Answer", func(dbc dbctx.Context) error {
		d, err := s.load(dbc, id)
		if err != nil {
			return err
		}
		if _, err := s.own.ownedCourse(dbc, d.CourseID, professorID); err != nil {
			return err
		}
		if err := requireDoubtStatus(d, answerableFrom); err != nil {
			return err
		}
		now := nowUTC()
		ok, err := s.doubtRepo.Transition(dbc, id, answerableFrom, map[string]any{
			"status":       types.DoubtStatusAnswered,
			"answer":       answer,
			"answer_hour":  now,
			"professor_id": professorID,
		})
		if err != nil {
			return err
		}
		if err := aggregates.RequireCASSuccess(ok, fmt.Sprintf("doubt %d was changed concurrently", id)); err != nil {
			return err
		}
		pid := professorID
		d.Status = types.DoubtStatusAnswered
		d.Answer = &answer
		d.AnswerHour = &now
		d.ProfessorID = &pid
		out = d
		return nil
	}, "doubt_id", id, "professor_id", professorID)
	if err != nil {
		return nil, err
	}
	s.notify.DoubtAnswered(out)
	return out, nil
}

func (s *doubtService) Close(ctx context.Context, actingUserID, id int64) (*types.Doubt, error) {
	var (
		out     *types.Doubt
		changed bool
	)
	err := s.w.do(ctx, "DoubtService.Close", func(dbc dbctx.Context) error {
		d, err := s.load(dbc, id)
		if err != nil {
			return err
		}
		if d.StudentID != actingUserID {
			if _, err := s.own.ownedCourse(dbc, d.CourseID, actingUserID); err != nil {
				return err
			}
		}
		out = d
		if d.Status == types.DoubtStatusClosed {
			return nil
		}
		if err := requireDoubtStatus(d, closableFrom); err != nil {
			return err
		}
		ok, err := s.doubtRepo.Transition(dbc, id, closableFrom, map[string]any{
			"status": types.DoubtStatusClosed,
		})
		if err != nil {
			return err
		}
		if err := aggregates.RequireCASSuccess(ok, fmt.Sprintf("doubt %d was changed concurrently", id)); err != nil {
			return err
		}
		d.Status = types.DoubtStatusClosed
		changed = true
		return nil
	}, "doubt_id", id, "acting_user_id", actingUserID)
	if err != nil {
		return nil, err
	}
	if changed {
		s.notify.DoubtClosed(out)
	}
	return out, nil
}

// Delete lets the author withdraw a doubt that is still OPEN; the course's
// professor may delete in any state.
func (s *doubtService) Delete(ctx context.Context, actingUserID, id int64) error {
	return s.w.do(ctx, "DoubtService.Delete", func(dbc dbctx.Context) error {
		d, err := s.load(dbc, id)
		if err != nil {
			return err
		}
		c, err := s.own.course(dbc, d.CourseID)
		if err != nil {
			return err
		}
		switch {
		case c.OwnedBy(actingUserID):
		case d.StudentID == actingUserID:
			if d.Status != types.DoubtStatusOpen {
				return apperr.Conflict(fmt.Sprintf("doubt %d is %s and can no longer be withdrawn", id, d.Status))
			}
		default:
			return apperr.Unauthorized(fmt.Sprintf("user %d may not delete doubt %d", actingUserID, id))
		}
		ok, err := s.doubtRepo.Delete(dbc, id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("doubt", id)
		}
		return nil
	}, "doubt_id", id, "acting_user_id", actingUserID)
}

var (
	answerableFrom = []types.DoubtStatus{types.DoubtStatusOpen}
	closableFrom   = []types.DoubtStatus{types.DoubtStatusOpen, types.DoubtStatusAnswered}
)

func requireDoubtStatus(d *types.Doubt, from []types.DoubtStatus) error {
	allowed := make([]string, len(from))
	for i, st := range from {
		allowed[i] = string(st)
	}
	return aggregates.RequireStatusAllowed(string(d.Status), allowed...)
}
