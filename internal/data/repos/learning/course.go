package learning

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/edulearn-backend/internal/data/repos/crud"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

type CourseRepo interface {
	Save(dbc dbctx.Context, c *types.Course) (*types.Course, error)

	// Reads preload the responsible professor with one IN query per call.
	GetByID(dbc dbctx.Context, id int64) (*types.Course, error)
	GetByIDs(dbc dbctx.Context, ids []int64) ([]*types.Course, error)
	ListCatalog(dbc dbctx.Context, category string) ([]*types.Course, error)
	ListByProfessor(dbc dbctx.Context, professorID int64) ([]*types.Course, error)
	SearchByTitle(dbc dbctx.Context, query string) ([]*types.Course, error)
	ListCategories(dbc dbctx.Context) ([]string, error)

	Update(dbc dbctx.Context, c *types.Course) (bool, error)
	UpdatePresentationVideo(dbc dbctx.Context, id int64, url string, at time.Time) (bool, error)
	Delete(dbc dbctx.Context, id int64) (bool, error)
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return &courseRepo{db: db, log: baseLog.With("repo", "CourseRepo")}
}

func (r *courseRepo) withProfessor(dbc dbctx.Context) *gorm.DB {
	return dbc.DB(r.db).Preload("Professor")
}

func (r *courseRepo) Save(dbc dbctx.Context, c *types.Course) (*types.Course, error) {
	if err := crud.Create(dbc.DB(r.db), "CourseRepo.Save", c, func() int64 { return c.ID }); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *courseRepo) GetByID(dbc dbctx.Context, id int64) (*types.Course, error) {
	return crud.ByID[types.Course](r.withProfessor(dbc), id)
}

func (r *courseRepo) GetByIDs(dbc dbctx.Context, ids []int64) ([]*types.Course, error) {
	return crud.ByIDs[types.Course](r.withProfessor(dbc), ids)
}

func (r *courseRepo) ListCatalog(dbc dbctx.Context, category string) ([]*types.Course, error) {
	q := r.withProfessor(dbc)
	if c := strings.TrimSpace(category); c != "" {
		q = q.Where("LOWER(category) = ?", strings.ToLower(c))
	}
	return crud.Find[types.Course](q.Order("title ASC, id ASC"))
}

func (r *courseRepo) ListByProfessor(dbc dbctx.Context, professorID int64) ([]*types.Course, error) {
	return crud.Find[types.Course](r.withProfessor(dbc).
		Where("professor_id = ?", professorID).
		Order("title ASC, id ASC"))
}

func (r *courseRepo) SearchByTitle(dbc dbctx.Context, query string) ([]*types.Course, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []*types.Course{}, nil
	}
	pattern := "%" + escapeLike(query) + "%"
	return crud.Find[types.Course](r.withProfessor(dbc).
		Where(`LOWER(title) LIKE ? ESCAPE '\'`, pattern).
		Order("title ASC, id ASC"))
}

func (r *courseRepo) ListCategories(dbc dbctx.Context) ([]string, error) {
	out := []string{}
	if err := dbc.DB(r.db).
		Model(&types.Course{}).
		Where("category <> ''").
		Distinct("category").
		Order("category ASC").
		Pluck("category", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *courseRepo) Update(dbc dbctx.Context, c *types.Course) (bool, error) {
	if c == nil {
		return false, nil
	}
	return crud.Update(dbc.DB(r.db), c, c.ID)
}

func (r *courseRepo) UpdatePresentationVideo(dbc dbctx.Context, id int64, url string, at time.Time) (bool, error) {
	return crud.UpdateFields[types.Course](dbc.DB(r.db), id, map[string]any{
		"presentation_video_url": url,
		"update_date":            at,
	})
}

func (r *courseRepo) Delete(dbc dbctx.Context, id int64) (bool, error) {
	return crud.Delete[types.Course](dbc.DB(r.db), id)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
