package services

import (
	"context"

	"github.com/yungbote/edulearn-backend/internal/data/aggregates"
	"github.com/yungbote/edulearn-backend/internal/data/repos"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

type ExerciseInput struct {
	Statement     string
	Type          types.QuestionType
	Options       []string
	CorrectAnswer *string
}

type ExerciseService interface {
	Create(ctx context.Context, professorID, classroomID int64, in ExerciseInput) (*types.Exercise, error)
	// GetByID and ListByClassroom hide correct answers unless viewerID owns
	// the course.
	GetByID(ctx context.Context, viewerID, id int64) (*types.Exercise, error)
	ListByClassroom(ctx context.Context, viewerID, classroomID int64) ([]*types.Exercise, error)
	Update(ctx context.Context, professorID, id int64, in ExerciseInput) (*types.Exercise, error)
	Delete(ctx context.Context, professorID, id int64) error
}

type exerciseService struct {
	w            writer
	log          *logger.Logger
	exerciseRepo repos.ExerciseRepo
	own          courseOwnership
	dependents   Dependents
}

func NewExerciseService(base aggregates.BaseDeps, log *logger.Logger, courseRepo repos.CourseRepo, classroomRepo repos.ClassroomRepo, exerciseRepo repos.ExerciseRepo, dependents Dependents) ExerciseService {
	serviceLog := log.With("service", "ExerciseService")
	return &exerciseService{
		w:            newWriter(base, serviceLog),
		log:          serviceLog,
		exerciseRepo: exerciseRepo,
		own:          courseOwnership{courses: courseRepo, classrooms: classroomRepo, exercises: exerciseRepo},
		dependents:   dependents,
	}
}

func (in ExerciseInput) body() questionBody {
	return questionBody{Statement: in.Statement, Type: in.Type, Options: in.Options, CorrectAnswer: in.CorrectAnswer}
}

func (s *exerciseService) Create(ctx context.Context, professorID, classroomID int64, in ExerciseInput) (*types.Exercise, error) {
	if err := requireID("classroom id", classroomID); err != nil {
		return nil, err
	}
	q, err := in.body().normalize()
	if err != nil {
		return nil, err
	}
	ex := &types.Exercise{
		ClassroomID:   classroomID,
		Statement:     q.Statement,
		Type:          q.Type,
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
	}
	err = s.w.do(ctx, "ExerciseService.Create", func(dbc dbctx.Context) error {
		if _, _, err := s.own.ownedClassroom(dbc, classroomID, professorID); err != nil {
			return err
		}
		_, err := s.exerciseRepo.Save(dbc, ex)
		return err
	}, "classroom_id", classroomID, "professor_id", professorID)
	if err != nil {
		return nil, err
	}
	return ex, nil
}

func (s *exerciseService) GetByID(ctx context.Context, viewerID, id int64) (*types.Exercise, error) {
	ex, _, c, err := s.own.exercise(read(ctx), id)
	if err != nil {
		return nil, mapRead(s.log, "ExerciseService.GetByID", err, "exercise_id", id)
	}
	if !c.OwnedBy(viewerID) {
		r := ex.Redacted()
		return &r, nil
	}
	return ex, nil
}

func (s *exerciseService) ListByClassroom(ctx context.Context, viewerID, classroomID int64) ([]*types.Exercise, error) {
	dbc := read(ctx)
	_, c, err := s.own.classroom(dbc, classroomID)
	if err != nil {
		return nil, mapRead(s.log, "ExerciseService.ListByClassroom", err, "classroom_id", classroomID)
	}
	rows, err := s.exerciseRepo.ListByClassroom(dbc, classroomID)
	if err != nil {
		return nil, mapRead(s.log, "ExerciseService.ListByClassroom", err, "classroom_id", classroomID)
	}
	if c.OwnedBy(viewerID) {
		return rows, nil
	}
	out := make([]*types.Exercise, 0, len(rows))
	for _, ex := range rows {
		r := ex.Redacted()
		out = append(out, &r)
	}
	return out, nil
}

func (s *exerciseService) Update(ctx context.Context, professorID, id int64, in ExerciseInput) (*types.Exercise, error) {
	q, err := in.body().normalize()
	if err != nil {
		return nil, err
	}
	var out *types.Exercise
	err = s.w.do(ctx, "ExerciseService.Update", func(dbc dbctx.Context) error {
		ex, _, err := s.own.ownedExercise(dbc, id, professorID)
		if err != nil {
			return err
		}
		ex.Statement = q.Statement
		ex.Type = q.Type
		ex.Options = q.Options
		ex.CorrectAnswer = q.CorrectAnswer
		ok, err := s.exerciseRepo.Update(dbc, ex)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Persistence("ExerciseService.Update", nil)
		}
		out = ex
		return nil
	}, "exercise_id", id, "professor_id", professorID)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *exerciseService) Delete(ctx context.Context, professorID, id int64) error {
	return s.w.do(ctx, "ExerciseService.Delete", func(dbc dbctx.Context) error {
		if _, _, err := s.own.ownedExercise(dbc, id, professorID); err != nil {
			return err
		}
		if err := s.dependents.ofExercise(dbc, id); err != nil {
			return err
		}
		ok, err := s.exerciseRepo.Delete(dbc, id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("exercise", id)
		}
		return nil
	}, "exercise_id", id, "professor_id", professorID)
}
