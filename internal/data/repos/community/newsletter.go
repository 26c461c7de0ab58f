package community

import (
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/edulearn-backend/internal/data/repos/crud"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

type NewsletterRepo interface {
	Save(dbc dbctx.Context, n *types.NewsletterInscription) (*types.NewsletterInscription, error)
	GetByID(dbc dbctx.Context, id int64) (*types.NewsletterInscription, error)
	GetByEmail(dbc dbctx.Context, email string) (*types.NewsletterInscription, error)
	ListActive(dbc dbctx.Context) ([]*types.NewsletterInscription, error)
	Update(dbc dbctx.Context, n *types.NewsletterInscription) (bool, error)
	Delete(dbc dbctx.Context, id int64) (bool, error)
}

type newsletterRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNewsletterRepo(db *gorm.DB, baseLog *logger.Logger) NewsletterRepo {
	return &newsletterRepo{db: db, log: baseLog.With("repo", "NewsletterRepo")}
}

func (r *newsletterRepo) Save(dbc dbctx.Context, n *types.NewsletterInscription) (*types.NewsletterInscription, error) {
	if err := crud.Create(dbc.DB(r.db), "NewsletterRepo.Save", n, func() int64 { return n.ID }); err != nil {
		return nil, err
	}
	return n, nil
}

func (r *newsletterRepo) GetByID(dbc dbctx.Context, id int64) (*types.NewsletterInscription, error) {
	return crud.ByID[types.NewsletterInscription](dbc.DB(r.db), id)
}

func (r *newsletterRepo) GetByEmail(dbc dbctx.Context, email string) (*types.NewsletterInscription, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil
	}
	return crud.First[types.NewsletterInscription](dbc.DB(r.db).Where("email = ?", email))
}

func (r *newsletterRepo) ListActive(dbc dbctx.Context) ([]*types.NewsletterInscription, error) {
	return crud.Find[types.NewsletterInscription](dbc.DB(r.db).
		Where("active = ?", true).
		Order("inscription_date DESC, id DESC"))
}

func (r *newsletterRepo) Update(dbc dbctx.Context, n *types.NewsletterInscription) (bool, error) {
	if n == nil {
		return false, nil
	}
	return crud.Update(dbc.DB(r.db), n, n.ID)
}

func (r *newsletterRepo) Delete(dbc dbctx.Context, id int64) (bool, error) {
	return crud.Delete[types.NewsletterInscription](dbc.DB(r.db), id)
}
