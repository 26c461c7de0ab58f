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

type ExamDefinitionInput struct {
	Title       string
	Description string
}

type ExamDefinitionService interface {
	Create(ctx context.Context, professorID, courseID int64, in ExamDefinitionInput) (*types.ExamDefinition, error)
	// Get returns the definition with its questions. Drafts are only visible
	// to the owning professor and correct answers are hidden from everyone
	// else.
	Get(ctx context.Context, viewerID, id int64) (*types.ExamDefinition, error)
	ListPublished(ctx context.Context, courseID int64) ([]*types.ExamDefinition, error)
	// ListForOwner lists every definition of the course; published filters
	// by state when non-nil.
	ListForOwner(ctx context.Context, professorID, courseID int64, published *bool) ([]*types.ExamDefinition, error)

	Update(ctx context.Context, professorID, id int64, in ExamDefinitionInput) (*types.ExamDefinition, error)
	Publish(ctx context.Context, professorID, id int64) (*types.ExamDefinition, error)
	Unpublish(ctx context.Context, professorID, id int64) (*types.ExamDefinition, error)
	Delete(ctx context.Context, professorID, id int64) error
}

type examDefinitionService struct {
	w              writer
	log            *logger.Logger
	definitionRepo repos.ExamDefinitionRepo
	questionRepo   repos.ExamQuestionRepo
	own            courseOwnership
	notify         Notifier
	dependents     Dependents
}

func NewExamDefinitionService(
	base aggregates.BaseDeps,
	log *logger.Logger,
	courseRepo repos.CourseRepo,
	definitionRepo repos.ExamDefinitionRepo,
	questionRepo repos.ExamQuestionRepo,
	notify Notifier,
	dependents Dependents,
) ExamDefinitionService {
	serviceLog := log.With("service", "ExamDefinitionService")
	if notify == nil {
		notify = NopNotifier()
	}
	return &examDefinitionService{
		w:              newWriter(base, serviceLog),
		log:            serviceLog,
		definitionRepo: definitionRepo,
		questionRepo:   questionRepo,
		own:            courseOwnership{courses: courseRepo, definitions: definitionRepo, questions: questionRepo},
		notify:         notify,
		dependents:     dependents,
	}
}

func (in ExamDefinitionInput) normalize() (ExamDefinitionInput, error) {
	var err error
	if in.Title, err = requireText("title", in.Title); err != nil {
		return in, err
	}
	in.Description = strings.TrimSpace(in.Description)
	return in, nil
}

func (s *examDefinitionService) Create(ctx context.Context, professorID, courseID int64, in ExamDefinitionInput) (*types.ExamDefinition, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	d := &types.ExamDefinition{
		CourseID:     courseID,
		Title:        in.Title,
		Description:  in.Description,
		CreationDate: nowUTC(),
	}
	err = s.w.do(ctx, "ExamDefinitionService.Create", func(dbc dbctx.Context) error {
		if _, err := s.own.ownedCourse(dbc, courseID, professorID); err != nil {
			return err
		}
		_, err := s.definitionRepo.Save(dbc, d)
		return err
	}, "course_id", courseID, "professor_id", professorID)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *examDefinitionService) Get(ctx context.Context, viewerID, id int64) (*types.ExamDefinition, error) {
	const op = "ExamDefinitionService.Get"
	if err := requireID("exam definition id", id); err != nil {
		return nil, err
	}
	dbc := read(ctx)
	d, err := s.definitionRepo.GetWithQuestions(dbc, id)
	if err == nil && d == nil {
		err = apperr.NotFound("exam definition", id)
	}
	if err != nil {
		return nil, mapRead(s.log, op, err, "exam_definition_id", id)
	}
	c, err := s.own.course(dbc, d.CourseID)
	if err != nil {
		return nil, mapRead(s.log, op, err, "exam_definition_id", id)
	}
	if c.OwnedBy(viewerID) {
		return d, nil
	}
	if !d.Published {
		return nil, apperr.NotFound("exam definition", id)
	}
	return redactDefinition(d), nil
}

func redactDefinition(d *types.ExamDefinition) *types.ExamDefinition {
	cp := *d
	cp.Questions = make([]types.ExamQuestion, 0, len(d.Questions))
	for _, q := range d.Questions {
		cp.Questions = append(cp.Questions, q.Redacted())
	}
	return &cp
}

func (s *examDefinitionService) ListPublished(ctx context.Context, courseID int64) ([]*types.ExamDefinition, error) {
	const op = "ExamDefinitionService.ListPublished"
	dbc := read(ctx)
	if _, err := s.own.course(dbc, courseID); err != nil {
		return nil, mapRead(s.log, op, err, "course_id", courseID)
	}
	out, err := s.definitionRepo.ListByCourse(dbc, courseID, true)
	if err != nil {
		return nil, mapRead(s.log, op, err, "course_id", courseID)
	}
	return out, nil
}

func (s *examDefinitionService) ListForOwner(ctx context.Context, professorID, courseID int64, published *bool) ([]*types.ExamDefinition, error) {
	const op = "ExamDefinitionService.ListForOwner"
	dbc := read(ctx)
	if _, err := s.own.ownedCourse(dbc, courseID, professorID); err != nil {
		return nil, mapRead(s.log, op, err, "course_id", courseID)
	}
	rows, err := s.definitionRepo.ListByCourse(dbc, courseID, false)
	if err != nil {
		return nil, mapRead(s.log, op, err, "course_id", courseID)
	}
	if published == nil {
		return rows, nil
	}
	out := make([]*types.ExamDefinition, 0, len(rows))
	for _, d := range rows {
		if d.Published == *published {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *examDefinitionService) Update(ctx context.Context, professorID, id int64, in ExamDefinitionInput) (*types.ExamDefinition, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	var out *types.ExamDefinition
	err = s.w.do(ctx, "ExamDefinitionService.Update", func(dbc dbctx.Context) error {
		d, _, err := s.own.ownedDefinition(dbc, id, professorID)
		if err != nil {
			return err
		}
		now := nowUTC()
		d.Title = in.Title
		d.Description = in.Description
		d.UpdateDate = &now
		ok, err := s.definitionRepo.Update(dbc, d)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Persistence("ExamDefinitionService.Update", nil)
		}
		out = d
		return nil
	}, "exam_definition_id", id, "professor_id", professorID)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *examDefinitionService) Publish(ctx context.Context, professorID, id int64) (*types.ExamDefinition, error) {
	d, changed, err := s.setPublished(ctx, "ExamDefinitionService.Publish", professorID, id, true)
	if err != nil {
		return nil, err
	}
	if changed {
		s.notify.ExamDefinitionPublished(d)
	}
	return d, nil
}

func (s *examDefinitionService) Unpublish(ctx context.Context, professorID, id int64) (*types.ExamDefinition, error) {
	d, _, err := s.setPublished(ctx, "ExamDefinitionService.Unpublish", professorID, id, false)
	return d, err
}

// setPublished writes only when the state actually changes.
func (s *examDefinitionService) setPublished(ctx context.Context, op string, professorID, id int64, published bool) (*types.ExamDefinition, bool, error) {
	var (
		out     *types.ExamDefinition
		changed bool
	)
	err := s.w.do(ctx, op, func(dbc dbctx.Context) error {
		d, _, err := s.own.ownedDefinition(dbc, id, professorID)
		if err != nil {
			return err
		}
		out = d
		if d.Published == published {
			return nil
		}
		now := nowUTC()
		ok, err := s.definitionRepo.SetPublished(dbc, id, published, now)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Persistence(op, nil)
		}
		d.Published = published
		d.UpdateDate = &now
		changed = true
		return nil
	}, "exam_definition_id", id, "professor_id", professorID)
	if err != nil {
		return nil, false, err
	}
	return out, changed, nil
}

func (s *examDefinitionService) Delete(ctx context.Context, professorID, id int64) error {
	return s.w.do(ctx, "ExamDefinitionService.Delete", func(dbc dbctx.Context) error {
		if _, _, err := s.own.ownedDefinition(dbc, id, professorID); err != nil {
			return err
		}
		if err := s.dependents.ofDefinition(dbc, id); err != nil {
			return err
		}
		ok, err := s.definitionRepo.Delete(dbc, id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("exam definition", id)
		}
		return nil
	}, "exam_definition_id", id, "professor_id", professorID)
}
