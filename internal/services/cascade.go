package services

import (
	"fmt"

	"github.com/yungbote/edulearn-backend/internal/data/repos"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
)

// Dependents clears the rows hanging off a parent before the parent itself
// is deleted. Every method runs on the caller's transaction.
type Dependents struct {
	Courses     repos.CourseRepo
	Classrooms  repos.ClassroomRepo
	Exercises   repos.ExerciseRepo
	Answers     repos.ExerciseAnswerRepo
	Definitions repos.ExamDefinitionRepo
	Questions   repos.ExamQuestionRepo
	Exams       repos.ExamRepo
	Enrollments repos.EnrollmentRepo
	Comments    repos.CommentRepo
	Doubts      repos.DoubtRepo
	Visitors    repos.VisitorQuestionRepo
}

type deleteStep func(dbc dbctx.Context, id int64) (int64, error)

func runSteps(dbc dbctx.Context, id int64, steps ...deleteStep) error {
	for _, step := range steps {
		if _, err := step(dbc, id); err != nil {
			return err
		}
	}
	return nil
}

func (d Dependents) ofExercise(dbc dbctx.Context, exerciseID int64) error {
	return runSteps(dbc, exerciseID, d.Answers.DeleteByExercise)
}

func (d Dependents) ofClassroom(dbc dbctx.Context, classroomID int64) error {
	return runSteps(dbc, classroomID,
		d.Answers.DeleteByClassroom,
		d.Exercises.DeleteByClassroom,
	)
}

func (d Dependents) ofDefinition(dbc dbctx.Context, definitionID int64) error {
	return runSteps(dbc, definitionID,
		d.Exams.DeleteByDefinition,
		d.Questions.DeleteByDefinition,
	)
}

// ofCourse removes children before the parents they point at.
func (d Dependents) ofCourse(dbc dbctx.Context, courseID int64) error {
	return runSteps(dbc, courseID,
		d.Answers.DeleteByCourse,
		d.Exercises.DeleteByCourse,
		d.Classrooms.DeleteByCourse,
		d.Exams.DeleteByCourse,
		d.Questions.DeleteByCourse,
		d.Definitions.DeleteByCourse,
		d.Enrollments.DeleteByCourse,
		d.Comments.DeleteByCourse,
		d.Doubts.DeleteByCourse,
	)
}

// ofUser refuses a professor who still owns courses; a student's own rows
// go with the account.
func (d Dependents) ofUser(dbc dbctx.Context, u *types.User) error {
	if u.Type == types.UserTypeProfessor {
		owned, err := d.Courses.ListByProfessor(dbc, u.ID)
		if err != nil {
			return err
		}
		if len(owned) > 0 {
			return apperr.Conflict(fmt.Sprintf("professor %d still owns %d course(s)", u.ID, len(owned)))
		}
		_, err = d.Visitors.ReleaseProfessor(dbc, u.ID)
		return err
	}
	return runSteps(dbc, u.ID,
		d.Answers.DeleteByStudent,
		d.Exams.DeleteByStudent,
		d.Enrollments.DeleteByStudent,
		d.Comments.DeleteByStudent,
		d.Doubts.DeleteByStudent,
	)
}
