package learning

import (
	"gorm.io/gorm"

	"github.com/yungbote/edulearn-backend/internal/data/repos/crud"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

type ExerciseRepo interface {
	Save(dbc dbctx.Context, e *types.Exercise) (*types.Exercise, error)
	GetByID(dbc dbctx.Context, id int64) (*types.Exercise, error)
	ListByClassroom(dbc dbctx.Context, classroomID int64) ([]*types.Exercise, error)
	Update(dbc dbctx.Context, e *types.Exercise) (bool, error)
	Delete(dbc dbctx.Context, id int64) (bool, error)
	DeleteByClassroom(dbc dbctx.Context, classroomID int64) (int64, error)
	DeleteByCourse(dbc dbctx.Context, courseID int64) (int64, error)
}

type exerciseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExerciseRepo(db *gorm.DB, baseLog *logger.Logger) ExerciseRepo {
	return &exerciseRepo{db: db, log: baseLog.With("repo", "ExerciseRepo")}
}

func (r *exerciseRepo) Save(dbc dbctx.Context, e *types.Exercise) (*types.Exercise, error) {
	if err := crud.Create(dbc.DB(r.db), "ExerciseRepo.Save", e, func() int64 { return e.ID }); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *exerciseRepo) GetByID(dbc dbctx.Context, id int64) (*types.Exercise, error) {
	return crud.ByID[types.Exercise](dbc.DB(r.db), id)
}

func (r *exerciseRepo) ListByClassroom(dbc dbctx.Context, classroomID int64) ([]*types.Exercise, error) {
	return crud.Find[types.Exercise](dbc.DB(r.db).
		Where("classroom_id = ?", classroomID).
		Order("id ASC"))
}

func (r *exerciseRepo) Update(dbc dbctx.Context, e *types.Exercise) (bool, error) {
	if e == nil {
		return false, nil
	}
	return crud.Update(dbc.DB(r.db), e, e.ID)
}

func (r *exerciseRepo) Delete(dbc dbctx.Context, id int64) (bool, error) {
	return crud.Delete[types.Exercise](dbc.DB(r.db), id)
}

func (r *exerciseRepo) DeleteByClassroom(dbc dbctx.Context, classroomID int64) (int64, error) {
	return crud.DeleteWhere[types.Exercise](dbc.DB(r.db), "classroom_id = ?", classroomID)
}

func (r *exerciseRepo) DeleteByCourse(dbc dbctx.Context, courseID int64) (int64, error) {
	return crud.DeleteWhere[types.Exercise](dbc.DB(r.db),
		"classroom_id IN (SELECT id FROM classroom WHERE course_id = ?)", courseID)
}
