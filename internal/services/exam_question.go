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

type ExamQuestionInput struct {
	Statement     string
	Type          types.QuestionType
	Options       []string
	CorrectAnswer *string
	// Grade is the number of points the question is worth.
	Grade    float64
	Sequence int
}

type ExamQuestionService interface {
	Add(ctx context.Context, professorID, definitionID int64, in ExamQuestionInput) (*types.ExamQuestion, error)
	ListByDefinition(ctx context.Context, viewerID, definitionID int64) ([]*types.ExamQuestion, error)
	Update(ctx context.Context, professorID, id int64, in ExamQuestionInput) (*types.ExamQuestion, error)
	Delete(ctx context.Context, professorID, id int64) error
}

type examQuestionService struct {
	w            writer
	log          *logger.Logger
	questionRepo repos.ExamQuestionRepo
	own          courseOwnership
}

func NewExamQuestionService(
	base aggregates.BaseDeps,
	log *logger.Logger,
	courseRepo repos.CourseRepo,
	definitionRepo repos.ExamDefinitionRepo,
	questionRepo repos.ExamQuestionRepo,
) ExamQuestionService {
	serviceLog := log.With("service", "ExamQuestionService")
	return &examQuestionService{
		w:            newWriter(base, serviceLog),
		log:          serviceLog,
		questionRepo: questionRepo,
		own:          courseOwnership{courses: courseRepo, definitions: definitionRepo, questions: questionRepo},
	}
}

func (in ExamQuestionInput) normalize() (ExamQuestionInput, error) {
	q, err := questionBody{Statement: in.Statement, Type: in.Type, Options: in.Options, CorrectAnswer: in.CorrectAnswer}.normalize()
	if err != nil {
		return in, err
	}
	if err := nonNegative("grade", in.Grade); err != nil {
		return in, err
	}
	if in.Sequence < 0 {
		return in, apperr.InvalidInput("sequence must not be negative")
	}
	in.Statement, in.Type, in.Options, in.CorrectAnswer = q.Statement, q.Type, q.Options, q.CorrectAnswer
	return in, nil
}

func (s *examQuestionService) Add(ctx context.Context, professorID, definitionID int64, in ExamQuestionInput) (*types.ExamQuestion, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	q := &types.ExamQuestion{
		ExamDefinitionID: definitionID,
		Statement:        in.Statement,
		Type:             in.Type,
		Options:          in.Options,
		CorrectAnswer:    in.CorrectAnswer,
		Grade:            in.Grade,
		Sequence:         in.Sequence,
	}
	err = s.w.do(ctx, "ExamQuestionService.Add", func(dbc dbctx.Context) error {
		if _, _, err := s.own.ownedDefinition(dbc, definitionID, professorID); err != nil {
			return err
		}
		_, err := s.questionRepo.Save(dbc, q)
		return err
	}, "exam_definition_id", definitionID, "professor_id", professorID)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (s *examQuestionService) ListByDefinition(ctx context.Context, viewerID, definitionID int64) ([]*types.ExamQuestion, error) {
	const op = "ExamQuestionService.ListByDefinition"
	dbc := read(ctx)
	d, c, err := s.own.definition(dbc, definitionID)
	if err != nil {
		return nil, mapRead(s.log, op, err, "exam_definition_id", definitionID)
	}
	owner := c.OwnedBy(viewerID)
	if !owner && !d.Published {
		return nil, apperr.NotFound("exam definition", definitionID)
	}
	rows, err := s.questionRepo.ListByDefinition(dbc, definitionID)
	if err != nil {
		return nil, mapRead(s.log, op, err, "exam_definition_id", definitionID)
	}
	if owner {
		return rows, nil
	}
	out := make([]*types.ExamQuestion, 0, len(rows))
	for _, q := range rows {
		r := q.Redacted()
		out = append(out, &r)
	}
	return out, nil
}

func (s *examQuestionService) Update(ctx context.Context, professorID, id int64, in ExamQuestionInput) (*types.ExamQuestion, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	var out *types.ExamQuestion
	err = s.w.do(ctx, "ExamQuestionService.Update", func(dbc dbctx.Context) error {
		q, _, err := s.own.ownedQuestion(dbc, id, professorID)
		if err != nil {
			return err
		}
		q.Statement = in.Statement
		q.Type = in.Type
		q.Options = in.Options
		q.CorrectAnswer = in.CorrectAnswer
		q.Grade = in.Grade
		q.Sequence = in.Sequence
		ok, err := s.questionRepo.Update(dbc, q)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Persistence("ExamQuestionService.Update", nil)
		}
		out = q
		return nil
	}, "exam_question_id", id, "professor_id", professorID)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *examQuestionService) Delete(ctx context.Context, professorID, id int64) error {
	return s.w.do(ctx, "ExamQuestionService.Delete", func(dbc dbctx.Context) error {
		if _, _, err := s.own.ownedQuestion(dbc, id, professorID); err != nil {
			return err
		}
		ok, err := s.questionRepo.Delete(dbc, id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("exam question", id)
		}
		return nil
	}, "exam_question_id", id, "professor_id", professorID)
}
