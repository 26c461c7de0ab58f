package learning

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/edulearn-backend/internal/data/repos/crud"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

type EnrollmentRepo interface {
	// Save fails with a conflict when the pair already exists.
	Save(dbc dbctx.Context, e *types.Enrollment) (*types.Enrollment, error)

	Get(dbc dbctx.Context, studentID, courseID int64) (*types.Enrollment, error)
	IsEnrolled(dbc dbctx.Context, studentID, courseID int64) (bool, error)
	ListByStudent(dbc dbctx.Context, studentID int64) ([]*types.Enrollment, error)
	ListByCourse(dbc dbctx.Context, courseID int64) ([]*types.Enrollment, error)
	CountByCourse(dbc dbctx.Context, courseID int64) (int64, error)

	UpdateProgress(dbc dbctx.Context, studentID, courseID int64, progress float64) (bool, error)
	Delete(dbc dbctx.Context, studentID, courseID int64) (bool, error)
	DeleteByCourse(dbc dbctx.Context, courseID int64) (int64, error)
	DeleteByStudent(dbc dbctx.Context, studentID int64) (int64, error)
}

type enrollmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	return &enrollmentRepo{db: db, log: baseLog.With("repo", "EnrollmentRepo")}
}

func (r *enrollmentRepo) pair(dbc dbctx.Context, studentID, courseID int64) *gorm.DB {
	return dbc.DB(r.db).Where("student_id = ? AND course_id = ?", studentID, courseID)
}

func (r *enrollmentRepo) Save(dbc dbctx.Context, e *types.Enrollment) (*types.Enrollment, error) {
	if e == nil {
		return nil, apperr.InvalidInput("EnrollmentRepo.Save: nil row")
	}
	res := dbc.DB(r.db).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(e)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.Conflict("student already enrolled in course")
	}
	return e, nil
}

func (r *enrollmentRepo) Get(dbc dbctx.Context, studentID, courseID int64) (*types.Enrollment, error) {
	return crud.First[types.Enrollment](r.pair(dbc, studentID, courseID))
}

func (r *enrollmentRepo) IsEnrolled(dbc dbctx.Context, studentID, courseID int64) (bool, error) {
	var count int64
	if err := r.pair(dbc, studentID, courseID).Model(&types.Enrollment{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *enrollmentRepo) ListByStudent(dbc dbctx.Context, studentID int64) ([]*types.Enrollment, error) {
	return crud.Find[types.Enrollment](dbc.DB(r.db).
		Preload("Course").
		Preload("Course.Professor").
		Where("student_id = ?", studentID).
		Order("enrollment_date DESC, course_id DESC"))
}

func (r *enrollmentRepo) ListByCourse(dbc dbctx.Context, courseID int64) ([]*types.Enrollment, error) {
	return crud.Find[types.Enrollment](dbc.DB(r.db).
		Where("course_id = ?", courseID).
		Order("enrollment_date ASC, student_id ASC"))
}

func (r *enrollmentRepo) CountByCourse(dbc dbctx.Context, courseID int64) (int64, error) {
	var count int64
	err := dbc.DB(r.db).Model(&types.Enrollment{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

func (r *enrollmentRepo) UpdateProgress(dbc dbctx.Context, studentID, courseID int64, progress float64) (bool, error) {
	res := r.pair(dbc, studentID, courseID).Model(&types.Enrollment{}).Update("progress", progress)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *enrollmentRepo) Delete(dbc dbctx.Context, studentID, courseID int64) (bool, error) {
	res := r.pair(dbc, studentID, courseID).Delete(&types.Enrollment{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *enrollmentRepo) DeleteByCourse(dbc dbctx.Context, courseID int64) (int64, error) {
	return crud.DeleteWhere[types.Enrollment](dbc.DB(r.db), "course_id = ?", courseID)
}

func (r *enrollmentRepo) DeleteByStudent(dbc dbctx.Context, studentID int64) (int64, error) {
	return crud.DeleteWhere[types.Enrollment](dbc.DB(r.db), "student_id = ?", studentID)
}
