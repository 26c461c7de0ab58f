package services

import (
	"context"
	"strings"

	"github.com/yungbote/edulearn-backend/internal/data/aggregates"
	"github.com/yungbote/edulearn-backend/internal/data/repos"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

type ClassroomInput struct {
	Title       string
	Description string
	ContentURL  *string
	Sequence    int
}

func (in ClassroomInput) normalize() (ClassroomInput, error) {
	var err error
	if in.Title, err = requireText("title", in.Title); err != nil {
		return in, err
	}
	in.Description = strings.TrimSpace(in.Description)
	in.ContentURL = optionalText(in.ContentURL)
	if in.Sequence < 0 {
		return in, apperr.InvalidInput("sequence must not be negative")
	}
	return in, nil
}

type ClassroomService interface {
	Create(ctx context.Context, professorID, courseID int64, in ClassroomInput) (*types.Classroom, error)
	GetByID(ctx context.Context, id int64) (*types.Classroom, error)
	ListByCourse(ctx context.Context, courseID int64) ([]*types.Classroom, error)
	Update(ctx context.Context, professorID, id int64, in ClassroomInput) (*types.Classroom, error)
	Delete(ctx context.Context, professorID, id int64) error
}

type classroomService struct {
	w             writer
	log           *logger.Logger
	classroomRepo repos.ClassroomRepo
	own           courseOwnership
	dependents    Dependents
}

func NewClassroomService(base aggregates.BaseDeps, log *logger.Logger, courseRepo repos.CourseRepo, classroomRepo repos.ClassroomRepo, dependents Dependents) ClassroomService {
	serviceLog := log.With("service", "ClassroomService")
	return &classroomService{
		w:             newWriter(base, serviceLog),
		log:           serviceLog,
		classroomRepo: classroomRepo,
		own:           courseOwnership{courses: courseRepo, classrooms: classroomRepo},
		dependents:    dependents,
	}
}

func (s *classroomService) Create(ctx context.Context, professorID, courseID int64, in ClassroomInput) (*types.Classroom, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	cl := &types.Classroom{
		CourseID:    courseID,
		Title:       in.Title,
		Description: in.Description,
		ContentURL:  in.ContentURL,
		Sequence:    in.Sequence,
	}
	err = s.w.do(ctx, "ClassroomService.Create", func(dbc dbctx.Context) error {
		if _, err := s.own.ownedCourse(dbc, courseID, professorID); err != nil {
			return err
		}
		_, err := s.classroomRepo.Save(dbc, cl)
		return err
	}, "course_id", courseID, "professor_id", professorID)
	if err != nil {
		return nil, err
	}
	return cl, nil
}

func (s *classroomService) GetByID(ctx context.Context, id int64) (*types.Classroom, error) {
	if err := requireID("classroom id", id); err != nil {
		return nil, err
	}
	cl, err := s.classroomRepo.GetByID(read(ctx), id)
	if err == nil && cl == nil {
		err = apperr.NotFound("classroom", id)
	}
	if err != nil {
		return nil, mapRead(s.log, "ClassroomService.GetByID", err, "classroom_id", id)
	}
	return cl, nil
}

func (s *classroomService) ListByCourse(ctx context.Context, courseID int64) ([]*types.Classroom, error) {
	dbc := read(ctx)
	if _, err := s.own.course(dbc, courseID); err != nil {
		return nil, mapRead(s.log, "ClassroomService.ListByCourse", err, "course_id", courseID)
	}
	out, err := s.classroomRepo.ListByCourse(dbc, courseID)
	if err != nil {
		return nil, mapRead(s.log, "ClassroomService.ListByCourse", err, "course_id", courseID)
	}
	return out, nil
}

func (s *classroomService) Update(ctx context.Context, professorID, id int64, in ClassroomInput) (*types.Classroom, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	var out *types.Classroom
	err = s.w.do(ctx, "ClassroomService.Update", func(dbc dbctx.Context) error {
		cl, _, err := s.own.ownedClassroom(dbc, id, professorID)
		if err != nil {
			return err
		}
		cl.Title = in.Title
		cl.Description = in.Description
		cl.ContentURL = in.ContentURL
		cl.Sequence = in.Sequence
		ok, err := s.classroomRepo.Update(dbc, cl)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Persistence("ClassroomService.Update", nil)
		}
		out = cl
		return nil
	}, "classroom_id", id, "professor_id", professorID)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *classroomService) Delete(ctx context.Context, professorID, id int64) error {
	return s.w.do(ctx, "ClassroomService.Delete", func(dbc dbctx.Context) error {
		if _, _, err := s.own.ownedClassroom(dbc, id, professorID); err != nil {
			return err
		}
		if err := s.dependents.ofClassroom(dbc, id); err != nil {
			return err
		}
		ok, err := s.classroomRepo.Delete(dbc, id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("classroom", id)
		}
		return nil
	}, "classroom_id", id, "professor_id", professorID)
}
