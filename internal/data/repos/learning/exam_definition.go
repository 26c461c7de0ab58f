package learning

import (
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/edulearn-backend/internal/data/repos/crud"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

type ExamDefinitionRepo interface {
	Save(dbc dbctx.Context, d *types.ExamDefinition) (*types.ExamDefinition, error)

	GetByID(dbc dbctx.Context, id int64) (*types.ExamDefinition, error)
	GetWithQuestions(dbc dbctx.Context, id int64) (*types.ExamDefinition, error)
	// ListByCourse orders newest first; publishedOnly hides drafts.
	ListByCourse(dbc dbctx.Context, courseID int64, publishedOnly bool) ([]*types.ExamDefinition, error)

	SetPublished(dbc dbctx.Context, id int64, published bool, at time.Time) (bool, error)
	Update(dbc dbctx.Context, d *types.ExamDefinition) (bool, error)
	Delete(dbc dbctx.Context, id int64) (bool, error)
	DeleteByCourse(dbc dbctx.Context, courseID int64) (int64, error)
}

type examDefinitionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExamDefinitionRepo(db *gorm.DB, baseLog *logger.Logger) ExamDefinitionRepo {
	return &examDefinitionRepo{db: db, log: baseLog.With("repo", "ExamDefinitionRepo")}
}

func (r *examDefinitionRepo) Save(dbc dbctx.Context, d *types.ExamDefinition) (*types.ExamDefinition, error) {
	if err := crud.Create(dbc.DB(r.db), "ExamDefinitionRepo.Save", d, func() int64 { return d.ID }); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *examDefinitionRepo) GetByID(dbc dbctx.Context, id int64) (*types.ExamDefinition, error) {
	return crud.ByID[types.ExamDefinition](dbc.DB(r.db), id)
}

func (r *examDefinitionRepo) GetWithQuestions(dbc dbctx.Context, id int64) (*types.ExamDefinition, error) {
	return crud.ByID[types.ExamDefinition](dbc.DB(r.db).Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence ASC, id ASC")
	}), id)
}

func (r *examDefinitionRepo) ListByCourse(dbc dbctx.Context, courseID int64, publishedOnly bool) ([]*types.ExamDefinition, error) {
	q := dbc.DB(r.db).Where("course_id = ?", courseID)
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	return crud.Find[types.ExamDefinition](q.Order("creation_date DESC, id DESC"))
}

func (r *examDefinitionRepo) SetPublished(dbc dbctx.Context, id int64, published bool, at time.Time) (bool, error) {
	return crud.UpdateFields[types.ExamDefinition](dbc.DB(r.db), id, map[string]any{
		"published":   published,
		"update_date": at,
	})
}

func (r *examDefinitionRepo) Update(dbc dbctx.Context, d *types.ExamDefinition) (bool, error) {
	if d == nil {
		return false, nil
	}
	return crud.Update(dbc.DB(r.db), d, d.ID)
}

func (r *examDefinitionRepo) Delete(dbc dbctx.Context, id int64) (bool, error) {
	return crud.Delete[types.ExamDefinition](dbc.DB(r.db), id)
}

func (r *examDefinitionRepo) DeleteByCourse(dbc dbctx.Context, courseID int64) (int64, error) {
	return crud.DeleteWhere[types.ExamDefinition](dbc.DB(r.db), "course_id = ?", courseID)
}
