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

type NewsletterService interface {
	// Subscribe creates the inscription or reactivates an inactive one.
	Subscribe(ctx context.Context, email string) (*types.NewsletterInscription, error)
	Unsubscribe(ctx context.Context, email string) error
	ListActive(ctx context.Context) ([]*types.NewsletterInscription, error)
}

type newsletterService struct {
	w    writer
	log  *logger.Logger
	repo repos.NewsletterRepo
}

func NewNewsletterService(base aggregates.BaseDeps, log *logger.Logger, repo repos.NewsletterRepo) NewsletterService {
	serviceLog := log.With("service", "NewsletterService")
	return &newsletterService{w: newWriter(base, serviceLog), log: serviceLog, repo: repo}
}

func (s *newsletterService) Subscribe(ctx context.Context, email string) (*types.NewsletterInscription, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	var out *types.NewsletterInscription
	err = s.w.do(ctx, "NewsletterService.Subscribe", func(dbc dbctx.Context) error {
		n, err := s.repo.GetByEmail(dbc, email)
		if err != nil {
			return err
		}
		if n == nil {
			n = &types.NewsletterInscription{Email: email, InscriptionDate: nowUTC(), Active: true}
			if _, err := s.repo.Save(dbc, n); err != nil {
				return err
			}
			out = n
			return nil
		}
		out = n
		if n.Active {
			return nil
		}
		n.Active = true
		n.InscriptionDate = nowUTC()
		ok, err := s.repo.Update(dbc, n)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Persistence("NewsletterService.Subscribe", nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *newsletterService) Unsubscribe(ctx context.Context, email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	return s.w.do(ctx, "NewsletterService.Unsubscribe", func(dbc dbctx.Context) error {
		n, err := s.repo.GetByEmail(dbc, email)
		if err != nil {
			return err
		}
		if n == nil {
			return &apperr.Error{Kind: apperr.KindNotFound, Message: fmt.Sprintf("%s is not subscribed", email)}
		}
		if !n.Active {
			return nil
		}
		n.Active = false
		ok, err := s.repo.Update(dbc, n)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Persistence("NewsletterService.Unsubscribe", nil)
		}
		return nil
	})
}

func (s *newsletterService) ListActive(ctx context.Context) ([]*types.NewsletterInscription, error) {
	out, err := s.repo.ListActive(read(ctx))
	if err != nil {
		return nil, mapRead(s.log, "NewsletterService.ListActive", err)
	}
	return out, nil
}
