package community

import (
	"gorm.io/gorm"

	"github.com/yungbote/edulearn-backend/internal/data/repos/crud"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

const commentTable = "comment"

type CommentRepo interface {
	Save(dbc dbctx.Context, c *types.Comment) (*types.Comment, error)
	GetByID(dbc dbctx.Context, id int64) (*types.Comment, error)
	// ListByCourse returns newest first with student_name joined in.
	ListByCourse(dbc dbctx.Context, courseID int64) ([]*types.Comment, error)
	ListByStudent(dbc dbctx.Context, studentID int64) ([]*types.Comment, error)
	Update(dbc dbctx.Context, c *types.Comment) (bool, error)
	UpdateText(dbc dbctx.Context, id int64, text string) (bool, error)
	Delete(dbc dbctx.Context, id int64) (bool, error)
	DeleteByCourse(dbc dbctx.Context, courseID int64) (int64, error)
	DeleteByStudent(dbc dbctx.Context, studentID int64) (int64, error)
}

type commentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCommentRepo(db *gorm.DB, baseLog *logger.Logger) CommentRepo {
	return &commentRepo{db: db, log: baseLog.With("repo", "CommentRepo")}
}

func (r *commentRepo) named(dbc dbctx.Context) *gorm.DB {
	return crud.WithStudentName(dbc.DB(r.db), commentTable)
}

func (r *commentRepo) Save(dbc dbctx.Context, c *types.Comment) (*types.Comment, error) {
	if err := crud.Create(dbc.DB(r.db), "CommentRepo.Save", c, func() int64 { return c.ID }); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *commentRepo) GetByID(dbc dbctx.Context, id int64) (*types.Comment, error) {
	if id <= 0 {
		return nil, nil
	}
	return crud.First[types.Comment](r.named(dbc).Where(commentTable+".id = ?", id))
}

func (r *commentRepo) ListByCourse(dbc dbctx.Context, courseID int64) ([]*types.Comment, error) {
	return crud.Find[types.Comment](r.named(dbc).
		Where(commentTable+".course_id = ?", courseID).
		Order(commentTable + ".hour_date DESC, " + commentTable + ".id DESC"))
}

func (r *commentRepo) ListByStudent(dbc dbctx.Context, studentID int64) ([]*types.Comment, error) {
	return crud.Find[types.Comment](r.named(dbc).
		Where(commentTable+".student_id = ?", studentID).
		Order(commentTable + ".hour_date DESC, " + commentTable + ".id DESC"))
}

func (r *commentRepo) Update(dbc dbctx.Context, c *types.Comment) (bool, error) {
	if c == nil {
		return false, nil
	}
	return crud.Update(dbc.DB(r.db), c, c.ID)
}

func (r *commentRepo) UpdateText(dbc dbctx.Context, id int64, text string) (bool, error) {
	return crud.UpdateFields[types.Comment](dbc.DB(r.db), id, map[string]any{"text": text})
}

func (r *commentRepo) Delete(dbc dbctx.Context, id int64) (bool, error) {
	return crud.Delete[types.Comment](dbc.DB(r.db), id)
}

func (r *commentRepo) DeleteByCourse(dbc dbctx.Context, courseID int64) (int64, error) {
	return crud.DeleteWhere[types.Comment](dbc.DB(r.db), "course_id = ?", courseID)
}

func (r *commentRepo) DeleteByStudent(dbc dbctx.Context, studentID int64) (int64, error) {
	return crud.DeleteWhere[types.Comment](dbc.DB(r.db), "student_id = ?", studentID)
}
