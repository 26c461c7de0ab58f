package learning

import (
	"database/sql"

	"gorm.io/gorm"

	"github.com/yungbote/edulearn-backend/internal/data/repos/crud"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

const examTable = "exam"

type ExamRepo interface {
	Save(dbc dbctx.Context, e *types.Exam) (*types.Exam, error)

	GetByID(dbc dbctx.Context, id int64) (*types.Exam, error)
	GetCourseEvaluation(dbc dbctx.Context, studentID, courseID int64) (*types.Exam, error)
	GetAttempt(dbc dbctx.Context, studentID, definitionID int64) (*types.Exam, error)
	ListEvaluationsByCourse(dbc dbctx.Context, courseID int64) ([]*types.Exam, error)
	ListAttemptsByDefinition(dbc dbctx.Context, definitionID int64) ([]*types.Exam, error)
	ListByStudent(dbc dbctx.Context, studentID int64) ([]*types.Exam, error)
	// AverageEvaluationGrade is nil when the course has no graded evaluation.
	AverageEvaluationGrade(dbc dbctx.Context, courseID int64) (*float64, error)

	Update(dbc dbctx.Context, e *types.Exam) (bool, error)
	Delete(dbc dbctx.Context, id int64) (bool, error)
	// DeleteByCourse removes evaluations and attempts alike.
	DeleteByCourse(dbc dbctx.Context, courseID int64) (int64, error)
	DeleteByDefinition(dbc dbctx.Context, definitionID int64) (int64, error)
	DeleteByStudent(dbc dbctx.Context, studentID int64) (int64, error)
}

type examRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExamRepo(db *gorm.DB, baseLog *logger.Logger) ExamRepo {
	return &examRepo{db: db, log: baseLog.With("repo", "ExamRepo")}
}

func (r *examRepo) named(dbc dbctx.Context) *gorm.DB {
	return crud.WithStudentName(dbc.DB(r.db), examTable)
}

func (r *examRepo) Save(dbc dbctx.Context, e *types.Exam) (*types.Exam, error) {
	if err := crud.Create(dbc.DB(r.db), "ExamRepo.Save", e, func() int64 { return e.ID }); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *examRepo) GetByID(dbc dbctx.Context, id int64) (*types.Exam, error) {
	if id <= 0 {
		return nil, nil
	}
	return crud.First[types.Exam](r.named(dbc).Where(examTable+".id = ?", id))
}

func (r *examRepo) GetCourseEvaluation(dbc dbctx.Context, studentID, courseID int64) (*types.Exam, error) {
	return crud.First[types.Exam](dbc.DB(r.db).
		Where("student_id = ? AND course_id = ? AND exam_definition_id IS NULL", studentID, courseID))
}

func (r *examRepo) GetAttempt(dbc dbctx.Context, studentID, definitionID int64) (*types.Exam, error) {
	return crud.First[types.Exam](dbc.DB(r.db).
		Where("student_id = ? AND exam_definition_id = ?", studentID, definitionID))
}

func (r *examRepo) ListEvaluationsByCourse(dbc dbctx.Context, courseID int64) ([]*types.Exam, error) {
	return crud.Find[types.Exam](r.named(dbc).
		Where(examTable+".course_id = ? AND "+examTable+".exam_definition_id IS NULL", courseID).
		Order(examTable + ".hour_date DESC, " + examTable + ".id DESC"))
}

func (r *examRepo) ListAttemptsByDefinition(dbc dbctx.Context, definitionID int64) ([]*types.Exam, error) {
	return crud.Find[types.Exam](r.named(dbc).
		Where(examTable+".exam_definition_id = ?", definitionID).
		Order(examTable + ".hour_date DESC, " + examTable + ".id DESC"))
}

func (r *examRepo) ListByStudent(dbc dbctx.Context, studentID int64) ([]*types.Exam, error) {
	return crud.Find[types.Exam](dbc.DB(r.db).
		Where("student_id = ?", studentID).
		Order("hour_date DESC, id DESC"))
}

func (r *examRepo) AverageEvaluationGrade(dbc dbctx.Context, courseID int64) (*float64, error) {
	var avg sql.NullFloat64
	row := dbc.DB(r.db).
		Model(&types.Exam{}).
		Select("AVG(grade)").
		Where("course_id = ? AND exam_definition_id IS NULL AND grade IS NOT NULL", courseID).
		Row()
	if err := row.Scan(&avg); err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

func (r *examRepo) Update(dbc dbctx.Context, e *types.Exam) (bool, error) {
	if e == nil {
		return false, nil
	}
	return crud.Update(dbc.DB(r.db), e, e.ID)
}

func (r *examRepo) Delete(dbc dbctx.Context, id int64) (bool, error) {
	return crud.Delete[types.Exam](dbc.DB(r.db), id)
}

func (r *examRepo) DeleteByCourse(dbc dbctx.Context, courseID int64) (int64, error) {
	return crud.DeleteWhere[types.Exam](dbc.DB(r.db), "course_id = ?", courseID)
}

func (r *examRepo) DeleteByDefinition(dbc dbctx.Context, definitionID int64) (int64, error) {
	return crud.DeleteWhere[types.Exam](dbc.DB(r.db), "exam_definition_id = ?", definitionID)
}

func (r *examRepo) DeleteByStudent(dbc dbctx.Context, studentID int64) (int64, error) {
	return crud.DeleteWhere[types.Exam](dbc.DB(r.db), "student_id = ?", studentID)
}
