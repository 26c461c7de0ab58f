package services

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/edulearn-backend/internal/data/aggregates"
	"github.com/yungbote/edulearn-backend/internal/data/repos"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

type CourseInput struct {
	Title       string
	Description string
	Price       float64
	Category    string
	HoursLoad   int
}

func (in CourseInput) normalize() (CourseInput, error) {
	var err error
	if in.Title, err = requireText("title", in.Title); err != nil {
		return in, err
	}
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	if err := nonNegative("price", in.Price); err != nil {
		return in, err
	}
	if in.HoursLoad < 0 {
		return in, apperr.InvalidInput("hours load must not be negative")
	}
	return in, nil
}

// CourseOverview is the landing view of a course.
type CourseOverview struct {
	Course          *types.Course           `json:"course"`
	Classrooms      []*types.Classroom      `json:"classrooms"`
	ExamDefinitions []*types.ExamDefinition `json:"exam_definitions"`
	EnrollmentCount int64                   `json:"enrollment_count"`
	AverageGrade    *float64                `json:"average_grade,omitempty"`
}

type CourseService interface {
	Create(ctx context.Context, professorID int64, in CourseInput) (*types.Course, error)
	GetByID(ctx context.Context, id int64) (*types.Course, error)
	GetOverview(ctx context.Context, id int64) (*CourseOverview, error)
	ListCatalog(ctx context.Context, category string) ([]*types.Course, error)
	ListByProfessor(ctx context.Context, professorID int64) ([]*types.Course, error)
	Search(ctx context.Context, query string) ([]*types.Course, error)
	ListCategories(ctx context.Context) ([]string, error)

	Update(ctx context.Context, professorID, id int64, in CourseInput) (*types.Course, error)
	Delete(ctx context.Context, professorID, id int64) error
}

type courseService struct {
	w              writer
	log            *logger.Logger
	userRepo       repos.UserRepo
	courseRepo     repos.CourseRepo
	classroomRepo  repos.ClassroomRepo
	definitionRepo repos.ExamDefinitionRepo
	examRepo       repos.ExamRepo
	enrollmentRepo repos.EnrollmentRepo
	own            courseOwnership
	dependents     Dependents
}

func NewCourseService(
	base aggregates.BaseDeps,
	log *logger.Logger,
	userRepo repos.UserRepo,
	courseRepo repos.CourseRepo,
	classroomRepo repos.ClassroomRepo,
	definitionRepo repos.ExamDefinitionRepo,
	examRepo repos.ExamRepo,
	enrollmentRepo repos.EnrollmentRepo,
	dependents Dependents,
) CourseService {
	serviceLog := log.With("service", "CourseService")
	return &courseService{
		w:              newWriter(base, serviceLog),
		log:            serviceLog,
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		classroomRepo:  classroomRepo,
		definitionRepo: definitionRepo,
		examRepo:       examRepo,
		enrollmentRepo: enrollmentRepo,
		own:            courseOwnership{courses: courseRepo},
		dependents:     dependents,
	}
}

func (cs *courseService) Create(ctx context.Context, professorID int64, in CourseInput) (*types.Course, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	c := &types.Course{
		Title:        in.Title,
		Description:  in.Description,
		Price:        in.Price,
		Category:     in.Category,
		HoursLoad:    in.HoursLoad,
		ProfessorID:  professorID,
		CreationDate: nowUTC(),
	}
	err = cs.w.do(ctx, "CourseService.Create", func(dbc dbctx.Context) error {
		prof, err := requireUser(dbc, cs.userRepo, professorID, types.UserTypeProfessor)
		if err != nil {
			return err
		}
		if _, err := cs.courseRepo.Save(dbc, c); err != nil {
			return err
		}
		c.Professor = prof
		return nil
	}, "professor_id", professorID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (cs *courseService) GetByID(ctx context.Context, id int64) (*types.Course, error) {
	c, err := cs.own.course(read(ctx), id)
	if err != nil {
		return nil, mapRead(cs.log, "CourseService.GetByID", err, "course_id", id)
	}
	return c, nil
}

func (cs *courseService) GetOverview(ctx context.Context, id int64) (*CourseOverview, error) {
	c, err := cs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &CourseOverview{Course: c}

	g, gctx := errgroup.WithContext(ctx)
	dbc := read(gctx)
	g.Go(func() error {
		rows, err := cs.classroomRepo.ListByCourse(dbc, id)
		out.Classrooms = rows
		return err
	})
	g.Go(func() error {
		rows, err := cs.definitionRepo.ListByCourse(dbc, id, true)
		out.ExamDefinitions = rows
		return err
	})
	g.Go(func() error {
		n, err := cs.enrollmentRepo.CountByCourse(dbc, id)
		out.EnrollmentCount = n
		return err
	})
	g.Go(func() error {
		avg, err := cs.examRepo.AverageEvaluationGrade(dbc, id)
		out.AverageGrade = avg
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, mapRead(cs.log, "CourseService.GetOverview", err, "course_id", id)
	}
	return out, nil
}

func (cs *courseService) ListCatalog(ctx context.Context, category string) ([]*types.Course, error) {
	out, err := cs.courseRepo.ListCatalog(read(ctx), strings.TrimSpace(category))
	if err != nil {
		return nil, mapRead(cs.log, "CourseService.ListCatalog", err)
	}
	return out, nil
}

func (cs *courseService) ListByProfessor(ctx context.Context, professorID int64) ([]*types.Course, error) {
	if err := requireID("professor id", professorID); err != nil {
		return nil, err
	}
	out, err := cs.courseRepo.ListByProfessor(read(ctx), professorID)
	if err != nil {
		return nil, mapRead(cs.log, "CourseService.ListByProfessor", err, "professor_id", professorID)
	}
	return out, nil
}

func (cs *courseService) Search(ctx context.Context, query string) ([]*types.Course, error) {
	q, err := requireText("query", query)
	if err != nil {
		return nil, err
	}
	out, err := cs.courseRepo.SearchByTitle(read(ctx), q)
	if err != nil {
		return nil, mapRead(cs.log, "CourseService.Search", err)
	}
	return out, nil
}

func (cs *courseService) ListCategories(ctx context.Context) ([]string, error) {
	out, err := cs.courseRepo.ListCategories(read(ctx))
	if err != nil {
		return nil, mapRead(cs.log, "CourseService.ListCategories", err)
	}
	return out, nil
}

func (cs *courseService) Update(ctx context.Context, professorID, id int64, in CourseInput) (*types.Course, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	var out *types.Course
	err = cs.w.do(ctx, "CourseService.Update", func(dbc dbctx.Context) error {
		c, err := cs.own.ownedCourse(dbc, id, professorID)
		if err != nil {
			return err
		}
		now := nowUTC()
		c.Title = in.Title
		c.Description = in.Description
		c.Price = in.Price
		c.Category = in.Category
		c.HoursLoad = in.HoursLoad
		c.UpdateDate = &now
		ok, err := cs.courseRepo.Update(dbc, c)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Persistence("CourseService.Update", nil)
		}
		out = c
		return nil
	}, "course_id", id, "professor_id", professorID)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (cs *courseService) Delete(ctx context.Context, professorID, id int64) error {
	return cs.w.do(ctx, "CourseService.Delete", func(dbc dbctx.Context) error {
		if _, err := cs.own.ownedCourse(dbc, id, professorID); err != nil {
			return err
		}
		if err := cs.dependents.ofCourse(dbc, id); err != nil {
			return err
		}
		ok, err := cs.courseRepo.Delete(dbc, id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("course", id)
		}
		return nil
	}, "course_id", id, "professor_id", professorID)
}
