package community

import (
	"gorm.io/gorm"

	"github.com/yungbote/edulearn-backend/internal/data/aggregates"
	"github.com/yungbote/edulearn-backend/internal/data/repos/crud"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

const doubtTable = "doubt"

type DoubtRepo interface {
	Save(dbc dbctx.Context, d *types.Doubt) (*types.Doubt, error)
	GetByID(dbc dbctx.Context, id int64) (*types.Doubt, error)
	// ListByCourse returns newest first; an empty status lists every state.
	ListByCourse(dbc dbctx.Context, courseID int64, status types.DoubtStatus) ([]*types.Doubt, error)
	ListByStudent(dbc dbctx.Context, studentID int64) ([]*types.Doubt, error)
	// Transition applies updates only while the row is in one of from.
	Transition(dbc dbctx.Context, id int64, from []types.DoubtStatus, updates map[string]any) (bool, error)
	Update(dbc dbctx.Context, d *types.Doubt) (bool, error)
	Delete(dbc dbctx.Context, id int64) (bool, error)
	DeleteByCourse(dbc dbctx.Context, courseID int64) (int64, error)
	DeleteByStudent(dbc dbctx.Context, studentID int64) (int64, error)
}

type doubtRepo struct {
	db    *gorm.DB
	log   *logger.Logger
	guard aggregates.CASGuard
}

func NewDoubtRepo(db *gorm.DB, baseLog *logger.Logger) DoubtRepo {
	return &doubtRepo{db: db, log: baseLog.With("repo", "DoubtRepo"), guard: aggregates.NewCASGuard(db)}
}

func (r *doubtRepo) named(dbc dbctx.Context) *gorm.DB {
	return crud.WithStudentName(dbc.DB(r.db), doubtTable)
}

func (r *doubtRepo) Save(dbc dbctx.Context, d *types.Doubt) (*types.Doubt, error) {
	if d != nil && d.Status == "" {
		d.Status = types.DoubtStatusOpen
	}
	if err := crud.Create(dbc.DB(r.db), "DoubtRepo.Save", d, func() int64 { return d.ID }); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *doubtRepo) GetByID(dbc dbctx.Context, id int64) (*types.Doubt, error) {
	if id <= 0 {
		return nil, nil
	}
	return crud.First[types.Doubt](r.named(dbc).Where(doubtTable+".id = ?", id))
}

func (r *doubtRepo) ListByCourse(dbc dbctx.Context, courseID int64, status types.DoubtStatus) ([]*types.Doubt, error) {
	q := r.named(dbc).Where(doubtTable+".course_id = ?", courseID)
	if status != "" {
		q = q.Where(doubtTable+".status = ?", status)
	}
	return crud.Find[types.Doubt](q.Order(doubtTable + ".created_at DESC, " + doubtTable + ".id DESC"))
}

func (r *doubtRepo) ListByStudent(dbc dbctx.Context, studentID int64) ([]*types.Doubt, error) {
	return crud.Find[types.Doubt](r.named(dbc).
		Where(doubtTable+".student_id = ?", studentID).
		Order(doubtTable + ".created_at DESC, " + doubtTable + ".id DESC"))
}

func (r *doubtRepo) Transition(dbc dbctx.Context, id int64, from []types.DoubtStatus, updates map[string]any) (bool, error) {
	allowed := make([]string, 0, len(from))
	for _, st := range from {
		allowed = append(allowed, string(st))
	}
	return r.guard.UpdateByStatus(dbc, doubtTable, id, allowed, updates)
}

func (r *doubtRepo) Update(dbc dbctx.Context, d *types.Doubt) (bool, error) {
	if d == nil {
		return false, nil
	}
	return crud.Update(dbc.DB(r.db), d, d.ID)
}

func (r *doubtRepo) Delete(dbc dbctx.Context, id int64) (bool, error) {
	return crud.Delete[types.Doubt](dbc.DB(r.db), id)
}

func (r *doubtRepo) DeleteByCourse(dbc dbctx.Context, courseID int64) (int64, error) {
	return crud.DeleteWhere[types.Doubt](dbc.DB(r.db), "course_id = ?", courseID)
}

func (r *doubtRepo) DeleteByStudent(dbc dbctx.Context, studentID int64) (int64, error) {
	return crud.DeleteWhere[types.Doubt](dbc.DB(r.db), "student_id = ?", studentID)
}
