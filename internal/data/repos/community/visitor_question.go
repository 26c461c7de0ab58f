package community

import (
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/edulearn-backend/internal/data/repos/crud"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

type VisitorQuestionRepo interface {
	Save(dbc dbctx.Context, q *types.VisitorQuestion) (*types.VisitorQuestion, error)
	GetByID(dbc dbctx.Context, id int64) (*types.VisitorQuestion, error)
	ListAll(dbc dbctx.Context) ([]*types.VisitorQuestion, error)
	ListUnanswered(dbc dbctx.Context) ([]*types.VisitorQuestion, error)
	// Answer only touches a row that has no answer yet.
	Answer(dbc dbctx.Context, id, professorID int64, answer string, at time.Time) (bool, error)
	Update(dbc dbctx.Context, q *types.VisitorQuestion) (bool, error)
	Delete(dbc dbctx.Context, id int64) (bool, error)
	// ReleaseProfessor keeps the answers but drops the link to the professor.
	ReleaseProfessor(dbc dbctx.Context, professorID int64) (int64, error)
}

type visitorQuestionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVisitorQuestionRepo(db *gorm.DB, baseLog *logger.Logger) VisitorQuestionRepo {
	return &visitorQuestionRepo{db: db, log: baseLog.With("repo", "VisitorQuestionRepo")}
}

func (r *visitorQuestionRepo) Save(dbc dbctx.Context, q *types.VisitorQuestion) (*types.VisitorQuestion, error) {
	if err := crud.Create(dbc.DB(r.db), "VisitorQuestionRepo.Save", q, func() int64 { return q.ID }); err != nil {
		return nil, err
	}
	return q, nil
}

func (r *visitorQuestionRepo) GetByID(dbc dbctx.Context, id int64) (*types.VisitorQuestion, error) {
	return crud.ByID[types.VisitorQuestion](dbc.DB(r.db), id)
}

func (r *visitorQuestionRepo) ListAll(dbc dbctx.Context) ([]*types.VisitorQuestion, error) {
	return crud.Find[types.VisitorQuestion](dbc.DB(r.db).Order("question_hour DESC, id DESC"))
}

func (r *visitorQuestionRepo) ListUnanswered(dbc dbctx.Context) ([]*types.VisitorQuestion, error) {
	return crud.Find[types.VisitorQuestion](dbc.DB(r.db).
		Where("answer IS NULL").
		Order("question_hour ASC, id ASC"))
}

func (r *visitorQuestionRepo) Answer(dbc dbctx.Context, id, professorID int64, answer string, at time.Time) (bool, error) {
	res := dbc.DB(r.db).
		Model(&types.VisitorQuestion{}).
		Where("id = ? AND answer IS NULL", id).
		Updates(map[string]any{
			"answer":                   answer,
			"answer_hour":              at,
			"professor_responsible_id": professorID,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *visitorQuestionRepo) Update(dbc dbctx.Context, q *types.VisitorQuestion) (bool, error) {
	if q == nil {
		return false, nil
	}
	return crud.Update(dbc.DB(r.db), q, q.ID)
}

func (r *visitorQuestionRepo) Delete(dbc dbctx.Context, id int64) (bool, error) {
	return crud.Delete[types.VisitorQuestion](dbc.DB(r.db), id)
}

func (r *visitorQuestionRepo) ReleaseProfessor(dbc dbctx.Context, professorID int64) (int64, error) {
	res := dbc.DB(r.db).Model(&types.VisitorQuestion{}).
		Where("professor_responsible_id = ?", professorID).
		Update("professor_responsible_id", nil)
	return res.RowsAffected, res.Error
}
