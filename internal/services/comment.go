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

type CommentService interface {
	// Create fails with a conflict unless the student is enrolled.
	Create(ctx context.Context, courseID, studentID int64, text string) (*types.Comment, error)
	GetByID(ctx context.Context, id int64) (*types.Comment, error)
	ListByCourse(ctx context.Context, courseID int64) ([]*types.Comment, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*types.Comment, error)
	Update(ctx context.Context, studentID, id int64, text string) (*types.Comment, error)
	// Delete is allowed to the author and to the course's professor.
	Delete(ctx context.Context, actingUserID, id int64) error
}

type commentService struct {
	w              writer
	log            *logger.Logger
	userRepo       repos.UserRepo
	commentRepo    repos.CommentRepo
	enrollmentRepo repos.EnrollmentRepo
	own            courseOwnership
	notify         Notifier
}

func NewCommentService(
	base aggregates.BaseDeps,
	log *logger.Logger,
	userRepo repos.UserRepo,
	courseRepo repos.CourseRepo,
	commentRepo repos.CommentRepo,
	enrollmentRepo repos.EnrollmentRepo,
	notify Notifier,
) CommentService {
	serviceLog := log.With("service", "CommentService")
	if notify == nil {
		notify = NopNotifier()
	}
	return &commentService{
		w:              newWriter(base, serviceLog),
		log:            serviceLog,
		userRepo:       userRepo,
		commentRepo:    commentRepo,
		enrollmentRepo: enrollmentRepo,
		own:            courseOwnership{courses: courseRepo},
		notify:         notify,
	}
}

func (s *commentService) Create(ctx context.Context, courseID, studentID int64, text string) (*types.Comment, error) {
	text, err := requireText("text", text)
	if err != nil {
		return nil, err
	}
	var out *types.Comment
	err = s.w.do(ctx, "CommentService.Create", func(dbc dbctx.Context) error {
		student, err := requireUser(dbc, s.userRepo, studentID, types.UserTypeStudent)
		if err != nil {
			return err
		}
		if _, err := s.own.course(dbc, courseID); err != nil {
			return err
		}
		if err := requireEnrolled(dbc, s.enrollmentRepo, studentID, courseID); err != nil {
			return err
		}
		c := &types.Comment{CourseID: courseID, StudentID: studentID, Text: text, HourDate: nowUTC()}
		if _, err := s.commentRepo.Save(dbc, c); err != nil {
			return err
		}
		c.StudentName = student.Name
		out = c
		return nil
	}, "course_id", courseID, "student_id", studentID)
	if err != nil {
		return nil, err
	}
	s.notify.CommentCreated(out)
	return out, nil
}

func (s *commentService) GetByID(ctx context.Context, id int64) (*types.Comment, error) {
	if err := requireID("comment id", id); err != nil {
		return nil, err
	}
	c, err := s.commentRepo.GetByID(read(ctx), id)
	if err == nil && c == nil {
		err = apperr.NotFound("comment", id)
	}
	if err != nil {
		return nil, mapRead(s.log, "CommentService.GetByID", err, "comment_id", id)
	}
	return c, nil
}

func (s *commentService) ListByCourse(ctx context.Context, courseID int64) ([]*types.Comment, error) {
	const op = "CommentService.ListByCourse"
	dbc := read(ctx)
	if _, err := s.own.course(dbc, courseID); err != nil {
		return nil, mapRead(s.log, op, err, "course_id", courseID)
	}
	out, err := s.commentRepo.ListByCourse(dbc, courseID)
	if err != nil {
		return nil, mapRead(s.log, op, err, "course_id", courseID)
	}
	return out, nil
}

func (s *commentService) ListByStudent(ctx context.Context, studentID int64) ([]*types.Comment, error) {
	if err := requireID("student id", studentID); err != nil {
		return nil, err
	}
	out, err := s.commentRepo.ListByStudent(read(ctx), studentID)
	if err != nil {
		return nil, mapRead(s.log, "CommentService.ListByStudent", err, "student_id", studentID)
	}
	return out, nil
}

func (s *commentService) Update(ctx context.Context, studentID, id int64, text string) (*types.Comment, error) {
	text, err := requireText("text", text)
	if err != nil {
		return nil, err
	}
	var out *types.Comment
	err = s.w.do(ctx, "CommentService.Update", func(dbc dbctx.Context) error {
		c, err := s.commentRepo.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if c == nil {
			return apperr.NotFound("comment", id)
		}
		if c.StudentID != studentID {
			return apperr.Unauthorized(fmt.Sprintf("user %d is not the author of comment %d", studentID, id))
		}
		ok, err := s.commentRepo.UpdateText(dbc, id, text)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Persistence("CommentService.Update", nil)
		}
		c.Text = text
		out = c
		return nil
	}, "comment_id", id, "student_id", studentID)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *commentService) Delete(ctx context.Context, actingUserID, id int64) error {
	return s.w.do(ctx, "CommentService.Delete", func(dbc dbctx.Context) error {
		c, err := s.commentRepo.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if c == nil {
			return apperr.NotFound("comment", id)
		}
		if c.StudentID != actingUserID {
			if _, err := s.own.ownedCourse(dbc, c.CourseID, actingUserID); err != nil {
				return err
			}
		}
		ok, err := s.commentRepo.Delete(dbc, id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("comment", id)
		}
		return nil
	}, "comment_id", id, "acting_user_id", actingUserID)
}
