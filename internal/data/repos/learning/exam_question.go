package learning

import (
	"gorm.io/gorm"

	"github.com/yungbote/edulearn-backend/internal/data/repos/crud"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

type ExamQuestionRepo interface {
	Save(dbc dbctx.Context, q *types.ExamQuestion) (*types.ExamQuestion, error)
	GetByID(dbc dbctx.Context, id int64) (*types.ExamQuestion, error)
	ListByDefinition(dbc dbctx.Context, definitionID int64) ([]*types.ExamQuestion, error)
	Update(dbc dbctx.Context, q *types.ExamQuestion) (bool, error)
	Delete(dbc dbctx.Context, id int64) (bool, error)
	DeleteByDefinition(dbc dbctx.Context, definitionID int64) (int64, error)
	DeleteByCourse(dbc dbctx.Context, courseID int64) (int64, error)
}

type examQuestionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExamQuestionRepo(db *gorm.DB, baseLog *logger.Logger) ExamQuestionRepo {
	return &examQuestionRepo{db: db, log: baseLog.With("repo", "ExamQuestionRepo")}
}

func (r *examQuestionRepo) Save(dbc dbctx.Context, q *types.ExamQuestion) (*types.ExamQuestion, error) {
	if err := crud.Create(dbc.DB(r.db), "ExamQuestionRepo.Save", q, func() int64 { return q.ID }); err != nil {
		return nil, err
	}
	return q, nil
}

func (r *examQuestionRepo) GetByID(dbc dbctx.Context, id int64) (*types.ExamQuestion, error) {
	return crud.ByID[types.ExamQuestion](dbc.DB(r.db), id)
}

func (r *examQuestionRepo) ListByDefinition(dbc dbctx.Context, definitionID int64) ([]*types.ExamQuestion, error) {
	return crud.Find[types.ExamQuestion](dbc.DB(r.db).
		Where("exam_definition_id = ?", definitionID).
		Order("sequence ASC, id ASC"))
}

func (r *examQuestionRepo) Update(dbc dbctx.Context, q *types.ExamQuestion) (bool, error) {
	if q == nil {
		return false, nil
	}
	return crud.Update(dbc.DB(r.db), q, q.ID)
}

func (r *examQuestionRepo) Delete(dbc dbctx.Context, id int64) (bool, error) {
	return crud.Delete[types.ExamQuestion](dbc.DB(r.db), id)
}

func (r *examQuestionRepo) DeleteByDefinition(dbc dbctx.Context, definitionID int64) (int64, error) {
	res := dbc.DB(r.db).Where("exam_definition_id = ?", definitionID).Delete(&types.ExamQuestion{})
	return res.RowsAffected, res.Error
}

func (r *examQuestionRepo) DeleteByCourse(dbc dbctx.Context, courseID int64) (int64, error) {
	return crud.DeleteWhere[types.ExamQuestion](dbc.DB(r.db),
		"exam_definition_id IN (SELECT id FROM exam_definition WHERE course_id = ?)", courseID)
}
