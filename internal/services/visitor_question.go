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

type VisitorQuestionService interface {
	Ask(ctx context.Context, name, email, text string) (*types.VisitorQuestion, error)
	GetByID(ctx context.Context, id int64) (*types.VisitorQuestion, error)
	ListAll(ctx context.Context) ([]*types.VisitorQuestion, error)
	ListUnanswered(ctx context.Context) ([]*types.VisitorQuestion, error)
	// Answer may be given once, by any professor.
	Answer(ctx context.Context, professorID, id int64, answer string) (*types.VisitorQuestion, error)
	Delete(ctx context.Context, professorID, id int64) error
}

type visitorQuestionService struct {
	w        writer
	log      *logger.Logger
	userRepo repos.UserRepo
	repo     repos.VisitorQuestionRepo
	notify   Notifier
}

func NewVisitorQuestionService(base aggregates.BaseDeps, log *logger.Logger, userRepo repos.UserRepo, repo repos.VisitorQuestionRepo, notify Notifier) VisitorQuestionService {
	serviceLog := log.With("service", "VisitorQuestionService")
	if notify == nil {
		notify = NopNotifier()
	}
	return &visitorQuestionService{
		w:        newWriter(base, serviceLog),
		log:      serviceLog,
		userRepo: userRepo,
		repo:     repo,
		notify:   notify,
	}
}

func (s *visitorQuestionService) Ask(ctx context.Context, name, email, text string) (*types.VisitorQuestion, error) {
	name, err := requireText("name", name)
	if err != nil {
		return nil, err
	}
	email, err = normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	text, err = requireText("question", text)
	if err != nil {
		return nil, err
	}
	q := &types.VisitorQuestion{VisitorName: name, VisitorEmail: email, QuestionText: text, QuestionHour: nowUTC()}
	err = s.w.do(ctx, "VisitorQuestionService.Ask", func(dbc dbctx.Context) error {
		_, err := s.repo.Save(dbc, q)
		return err
	})
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (s *visitorQuestionService) GetByID(ctx context.Context, id int64) (*types.VisitorQuestion, error) {
	if err := requireID("visitor question id", id); err != nil {
		return nil, err
	}
	q, err := s.repo.GetByID(read(ctx), id)
	if err == nil && q == nil {
		err = apperr.NotFound("visitor question", id)
	}
	if err != nil {
		return nil, mapRead(s.log, "VisitorQuestionService.GetByID", err, "visitor_question_id", id)
	}
	return q, nil
}

func (s *visitorQuestionService) ListAll(ctx context.Context) ([]*types.VisitorQuestion, error) {
	out, err := s.repo.ListAll(read(ctx))
	if err != nil {
		return nil, mapRead(s.log, "VisitorQuestionService.ListAll", err)
	}
	return out, nil
}

func (s *visitorQuestionService) ListUnanswered(ctx context.Context) ([]*types.VisitorQuestion, error) {
	out, err := s.repo.ListUnanswered(read(ctx))
	if err != nil {
		return nil, mapRead(s.log, "VisitorQuestionService.ListUnanswered", err)
	}
	return out, nil
}

func (s *visitorQuestionService) Answer(ctx context.Context, professorID, id int64, answer string) (*types.VisitorQuestion, error) {
	answer, err := requireText("answer", answer)
	if err != nil {
		return nil, err
	}
	var out *types.VisitorQuestion
	err = s.w.do(ctx, "VisitorQuestionService.Answer", func(dbc dbctx.Context) error {
		if _, err := requireUser(dbc, s.userRepo, professorID, types.UserTypeProfessor); err != nil {
			return err
		}
		q, err := s.repo.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if q == nil {
			return apperr.NotFound("visitor question", id)
		}
		if q.Answered() {
			return apperr.Conflict(fmt.Sprintf("visitor question %d is already answered", id))
		}
		now := nowUTC()
		ok, err := s.repo.Answer(dbc, id, professorID, answer, now)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Conflict(fmt.Sprintf("visitor question %d is already answered", id))
		}
		pid := professorID
		q.Answer = &answer
		q.AnswerHour = &now
		q.ProfessorResponsibleID = &pid
		out = q
		return nil
	}, "visitor_question_id", id, "professor_id", professorID)
	if err != nil {
		return nil, err
	}
	s.notify.VisitorQuestionAnswered(out)
	return out, nil
}

func (s *visitorQuestionService) Delete(ctx context.Context, professorID, id int64) error {
	return s.w.do(ctx, "VisitorQuestionService.Delete", func(dbc dbctx.Context) error {
		if _, err := requireUser(dbc, s.userRepo, professorID, types.UserTypeProfessor); err != nil {
			return err
		}
		ok, err := s.repo.Delete(dbc, id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("visitor question", id)
		}
		return nil
	}, "visitor_question_id", id, "professor_id", professorID)
}
