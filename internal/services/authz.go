package services

import (
	"fmt"

	"github.com/yungbote/edulearn-backend/internal/data/repos"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
)

// RequireCourseOwner passes only when actingUserID is the course's
// responsible professor.
func RequireCourseOwner(course *types.Course, actingUserID int64) error {
	if course == nil {
		return apperr.NotFound("course", 0)
	}
	if !course.OwnedBy(actingUserID) {
		return apperr.Unauthorized(fmt.Sprintf("user %d is not the responsible professor of course %d", actingUserID, course.ID))
	}
	return nil
}

// courseOwnership resolves a course-scoped entity up to its course so the
// ownership check can run against it.
type courseOwnership struct {
	courses     repos.CourseRepo
	classrooms  repos.ClassroomRepo
	exercises   repos.ExerciseRepo
	definitions repos.ExamDefinitionRepo
	questions   repos.ExamQuestionRepo
}

func (o courseOwnership) course(dbc dbctx.Context, courseID int64) (*types.Course, error) {
	if err := requireID("course id", courseID); err != nil {
		return nil, err
	}
	c, err := o.courses.GetByID(dbc, courseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("course", courseID)
	}
	return c, nil
}

func (o courseOwnership) ownedCourse(dbc dbctx.Context, courseID, actingUserID int64) (*types.Course, error) {
	c, err := o.course(dbc, courseID)
	if err != nil {
		return nil, err
	}
	if err := RequireCourseOwner(c, actingUserID); err != nil {
		return nil, err
	}
	return c, nil
}

func (o courseOwnership) classroom(dbc dbctx.Context, classroomID int64) (*types.Classroom, *types.Course, error) {
	if err := requireID("classroom id", classroomID); err != nil {
		return nil, nil, err
	}
	cl, err := o.classrooms.GetByID(dbc, classroomID)
	if err != nil {
		return nil, nil, err
	}
	if cl == nil {
		return nil, nil, apperr.NotFound("classroom", classroomID)
	}
	c, err := o.course(dbc, cl.CourseID)
	if err != nil {
		return nil, nil, err
	}
	return cl, c, nil
}

func (o courseOwnership) ownedClassroom(dbc dbctx.Context, classroomID, actingUserID int64) (*types.Classroom, *types.Course, error) {
	cl, c, err := o.classroom(dbc, classroomID)
	if err != nil {
		return nil, nil, err
	}
	if err := RequireCourseOwner(c, actingUserID); err != nil {
		return nil, nil, err
	}
	return cl, c, nil
}

func (o courseOwnership) exercise(dbc dbctx.Context, exerciseID int64) (*types.Exercise, *types.Classroom, *types.Course, error) {
	if err := requireID("exercise id", exerciseID); err != nil {
		return nil, nil, nil, err
	}
	ex, err := o.exercises.GetByID(dbc, exerciseID)
	if err != nil {
		return nil, nil, nil, err
	}
	if ex == nil {
		return nil, nil, nil, apperr.NotFound("exercise", exerciseID)
	}
	cl, c, err := o.classroom(dbc, ex.ClassroomID)
	if err != nil {
		return nil, nil, nil, err
	}
	return ex, cl, c, nil
}

func (o courseOwnership) ownedExercise(dbc dbctx.Context, exerciseID, actingUserID int64) (*types.Exercise, *types.Course, error) {
	ex, _, c, err := o.exercise(dbc, exerciseID)
	if err != nil {
		return nil, nil, err
	}
	if err := RequireCourseOwner(c, actingUserID); err != nil {
		return nil, nil, err
	}
	return ex, c, nil
}

func (o courseOwnership) definition(dbc dbctx.Context, definitionID int64) (*types.ExamDefinition, *types.Course, error) {
	if err := requireID("exam definition id", definitionID); err != nil {
		return nil, nil, err
	}
	d, err := o.definitions.GetByID(dbc, definitionID)
	if err != nil {
		return nil, nil, err
	}
	if d == nil {
		return nil, nil, apperr.NotFound("exam definition", definitionID)
	}
	c, err := o.course(dbc, d.CourseID)
	if err != nil {
		return nil, nil, err
	}
	return d, c, nil
}

func (o courseOwnership) ownedDefinition(dbc dbctx.Context, definitionID, actingUserID int64) (*types.ExamDefinition, *types.Course, error) {
	d, c, err := o.definition(dbc, definitionID)
	if err != nil {
		return nil, nil, err
	}
	if err := RequireCourseOwner(c, actingUserID); err != nil {
		return nil, nil, err
	}
	return d, c, nil
}

func (o courseOwnership) ownedQuestion(dbc dbctx.Context, questionID, actingUserID int64) (*types.ExamQuestion, *types.ExamDefinition, error) {
	if err := requireID("exam question id", questionID); err != nil {
		return nil, nil, err
	}
	q, err := o.questions.GetByID(dbc, questionID)
	if err != nil {
		return nil, nil, err
	}
	if q == nil {
		return nil, nil, apperr.NotFound("exam question", questionID)
	}
	d, _, err := o.ownedDefinition(dbc, q.ExamDefinitionID, actingUserID)
	if err != nil {
		return nil, nil, err
	}
	return q, d, nil
}

// requireUser resolves id and checks its variant when want is non-empty.
func requireUser(dbc dbctx.Context, users repos.UserRepo, id int64, want types.UserType) (*types.User, error) {
	if err := requireID("user id", id); err != nil {
		return nil, err
	}
	u, err := users.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("user", id)
	}
	if want != "" && u.Type != want {
		return nil, apperr.Unauthorized(fmt.Sprintf("user %d is not a %s", id, want))
	}
	return u, nil
}

// requireEnrolled rejects students who are not registered in the course.
func requireEnrolled(dbc dbctx.Context, enrollments repos.EnrollmentRepo, studentID, courseID int64) error {
	ok, err := enrollments.IsEnrolled(dbc, studentID, courseID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Conflict(fmt.Sprintf("student %d is not enrolled in course %d", studentID, courseID))
	}
	return nil
}
