package learning

import (
	"gorm.io/gorm"

	"github.com/yungbote/edulearn-backend/internal/data/repos/crud"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

type ClassroomRepo interface {
	Save(dbc dbctx.Context, c *types.Classroom) (*types.Classroom, error)
	GetByID(dbc dbctx.Context, id int64) (*types.Classroom, error)
	ListByCourse(dbc dbctx.Context, courseID int64) ([]*types.Classroom, error)
	Update(dbc dbctx.Context, c *types.Classroom) (bool, error)
	UpdateContentURL(dbc dbctx.Context, id int64, url string) (bool, error)
	Delete(dbc dbctx.Context, id int64) (bool, error)
	DeleteByCourse(dbc dbctx.Context, courseID int64) (int64, error)
}

type classroomRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClassroomRepo(db *gorm.DB, baseLog *logger.Logger) ClassroomRepo {
	return &classroomRepo{db: db, log: baseLog.With("repo", "ClassroomRepo")}
}

func (r *classroomRepo) Save(dbc dbctx.Context, c *types.Classroom) (*types.Classroom, error) {
	if err := crud.Create(dbc.DB(r.db), "ClassroomRepo.Save", c, func() int64 { return c.ID }); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *classroomRepo) GetByID(dbc dbctx.Context, id int64) (*types.Classroom, error) {
	return crud.ByID[types.Classroom](dbc.DB(r.db), id)
}

func (r *classroomRepo) ListByCourse(dbc dbctx.Context, courseID int64) ([]*types.Classroom, error) {
	return crud.Find[types.Classroom](dbc.DB(r.db).
		Where("course_id = ?", courseID).
		Order("sequence ASC, id ASC"))
}

func (r *classroomRepo) Update(dbc dbctx.Context, c *types.Classroom) (bool, error) {
	if c == nil {
		return false, nil
	}
	return crud.Update(dbc.DB(r.db), c, c.ID)
}

func (r *classroomRepo) UpdateContentURL(dbc dbctx.Context, id int64, url string) (bool, error) {
	return crud.UpdateFields[types.Classroom](dbc.DB(r.db), id, map[string]any{"content_url": url})
}

func (r *classroomRepo) Delete(dbc dbctx.Context, id int64) (bool, error) {
	return crud.Delete[types.Classroom](dbc.DB(r.db), id)
}

func (r *classroomRepo) DeleteByCourse(dbc dbctx.Context, courseID int64) (int64, error) {
	return crud.DeleteWhere[types.Classroom](dbc.DB(r.db), "course_id = ?", courseID)
}
