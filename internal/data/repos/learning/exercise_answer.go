package learning

import (
	"gorm.io/gorm"

	"github.com/yungbote/edulearn-backend/internal/data/repos/crud"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

const exerciseAnswerTable = "exercise_answer"

type ExerciseAnswerRepo interface {
	Save(dbc dbctx.Context, a *types.ExerciseAnswer) (*types.ExerciseAnswer, error)

	GetByID(dbc dbctx.Context, id int64) (*types.ExerciseAnswer, error)
	GetByStudentAndExercise(dbc dbctx.Context, studentID, exerciseID int64) (*types.ExerciseAnswer, error)
	ListByExercise(dbc dbctx.Context, exerciseID int64) ([]*types.ExerciseAnswer, error)
	ListByStudentAndCourse(dbc dbctx.Context, studentID, courseID int64) ([]*types.ExerciseAnswer, error)
	ListUngradedByCourse(dbc dbctx.Context, courseID int64) ([]*types.ExerciseAnswer, error)

	Grade(dbc dbctx.Context, id int64, correct bool, grade float64, feedback *string) (bool, error)
	Update(dbc dbctx.Context, a *types.ExerciseAnswer) (bool, error)
	Delete(dbc dbctx.Context, id int64) (bool, error)
	DeleteByExercise(dbc dbctx.Context, exerciseID int64) (int64, error)
	DeleteByClassroom(dbc dbctx.Context, classroomID int64) (int64, error)
	DeleteByCourse(dbc dbctx.Context, courseID int64) (int64, error)
	DeleteByStudent(dbc dbctx.Context, studentID int64) (int64, error)
}

type exerciseAnswerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExerciseAnswerRepo(db *gorm.DB, baseLog *logger.Logger) ExerciseAnswerRepo {
	return &exerciseAnswerRepo{db: db, log: baseLog.With("repo", "ExerciseAnswerRepo")}
}

func (r *exerciseAnswerRepo) named(dbc dbctx.Context) *gorm.DB {
	return crud.WithStudentName(dbc.DB(r.db), exerciseAnswerTable)
}

func (r *exerciseAnswerRepo) Save(dbc dbctx.Context, a *types.ExerciseAnswer) (*types.ExerciseAnswer, error) {
	if err := crud.Create(dbc.DB(r.db), "ExerciseAnswerRepo.Save", a, func() int64 { return a.ID }); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *exerciseAnswerRepo) GetByID(dbc dbctx.Context, id int64) (*types.ExerciseAnswer, error) {
	if id <= 0 {
		return nil, nil
	}
	return crud.First[types.ExerciseAnswer](r.named(dbc).Where(exerciseAnswerTable+".id = ?", id))
}

func (r *exerciseAnswerRepo) GetByStudentAndExercise(dbc dbctx.Context, studentID, exerciseID int64) (*types.ExerciseAnswer, error) {
	return crud.First[types.ExerciseAnswer](dbc.DB(r.db).
		Where("student_id = ? AND exercise_id = ?", studentID, exerciseID))
}

func (r *exerciseAnswerRepo) ListByExercise(dbc dbctx.Context, exerciseID int64) ([]*types.ExerciseAnswer, error) {
	return crud.Find[types.ExerciseAnswer](r.named(dbc).
		Where(exerciseAnswerTable+".exercise_id = ?", exerciseID).
		Order(exerciseAnswerTable + ".send_date DESC, " + exerciseAnswerTable + ".id DESC"))
}

func (r *exerciseAnswerRepo) ListByStudentAndCourse(dbc dbctx.Context, studentID, courseID int64) ([]*types.ExerciseAnswer, error) {
	return crud.Find[types.ExerciseAnswer](dbc.DB(r.db).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Order("send_date DESC, id DESC"))
}

func (r *exerciseAnswerRepo) ListUngradedByCourse(dbc dbctx.Context, courseID int64) ([]*types.ExerciseAnswer, error) {
	return crud.Find[types.ExerciseAnswer](r.named(dbc).
		Where(exerciseAnswerTable+".course_id = ? AND "+exerciseAnswerTable+".grade IS NULL", courseID).
		Order(exerciseAnswerTable + ".send_date ASC, " + exerciseAnswerTable + ".id ASC"))
}

func (r *exerciseAnswerRepo) Grade(dbc dbctx.Context, id int64, correct bool, grade float64, feedback *string) (bool, error) {
	return crud.UpdateFields[types.ExerciseAnswer](dbc.DB(r.db), id, map[string]any{
		"correct":  correct,
		"grade":    grade,
		"feedback": feedback,
	})
}

func (r *exerciseAnswerRepo) Update(dbc dbctx.Context, a *types.ExerciseAnswer) (bool, error) {
	if a == nil {
		return false, nil
	}
	return crud.Update(dbc.DB(r.db), a, a.ID)
}

func (r *exerciseAnswerRepo) Delete(dbc dbctx.Context, id int64) (bool, error) {
	return crud.Delete[types.ExerciseAnswer](dbc.DB(r.db), id)
}

func (r *exerciseAnswerRepo) DeleteByExercise(dbc dbctx.Context, exerciseID int64) (int64, error) {
	return crud.DeleteWhere[types.ExerciseAnswer](dbc.DB(r.db), "exercise_id = ?", exerciseID)
}

func (r *exerciseAnswerRepo) DeleteByClassroom(dbc dbctx.Context, classroomID int64) (int64, error) {
	return crud.DeleteWhere[types.ExerciseAnswer](dbc.DB(r.db), "classroom_id = ?", classroomID)
}

func (r *exerciseAnswerRepo) DeleteByCourse(dbc dbctx.Context, courseID int64) (int64, error) {
	return crud.DeleteWhere[types.ExerciseAnswer](dbc.DB(r.db), "course_id = ?", courseID)
}

func (r *exerciseAnswerRepo) DeleteByStudent(dbc dbctx.Context, studentID int64) (int64, error) {
	return crud.DeleteWhere[types.ExerciseAnswer](dbc.DB(r.db), "student_id = ?", studentID)
}
