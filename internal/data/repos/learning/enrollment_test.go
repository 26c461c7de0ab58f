package learning

import (
	"testing"

	"github.com/yungbote/edulearn-backend/internal/data/repos/testutil"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
)

func TestEnrollmentRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := testutil.DBC(tx)

	repo := NewEnrollmentRepo(db, testutil.Logger(t))
	prof := testutil.SeedProfessor(t, tx, "Prof")
	student := testutil.SeedStudent(t, tx, "Stu")
	course := testutil.SeedCourse(t, tx, prof.ID, "Course", "Cat")

	enrolled, err := repo.IsEnrolled(dbc, student.ID, course.ID)
	if err != nil || enrolled {
		t.Fatalf("IsEnrolled (before): enrolled=%v err=%v", enrolled, err)
	}

	in := &types.Enrollment{StudentID: student.ID, CourseID: course.ID, EnrollmentDate: testutil.Now()}
	if _, err := repo.Save(dbc, in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	_, err = repo.Save(dbc, &types.Enrollment{StudentID: student.ID, CourseID: course.ID, EnrollmentDate: testutil.Now()})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("Save duplicate: expected conflict, got %v", err)
	}

	got, err := repo.Get(dbc, student.ID, course.ID)
	if err != nil || got == nil || got.Progress != 0 || !got.EnrollmentDate.Equal(in.EnrollmentDate) {
		t.Fatalf("Get: err=%v row=%+v", err, got)
	}

	ok, err := repo.UpdateProgress(dbc, student.ID, course.ID, 0.5)
	if err != nil || !ok {
		t.Fatalf("UpdateProgress: ok=%v err=%v", ok, err)
	}
	ok, err = repo.UpdateProgress(dbc, student.ID, course.ID+999, 0.5)
	if err != nil || ok {
		t.Fatalf("UpdateProgress (missing): ok=%v err=%v", ok, err)
	}

	mine, err := repo.ListByStudent(dbc, student.ID)
	if err != nil || len(mine) != 1 || mine[0].Progress != 0.5 {
		t.Fatalf("ListByStudent: err=%v rows=%+v", err, mine)
	}
	if mine[0].Course == nil || mine[0].Course.ID != course.ID || mine[0].Course.Professor == nil {
		t.Fatalf("ListByStudent: expected course and professor preloaded, got %+v", mine[0].Course)
	}

	count, err := repo.CountByCourse(dbc, course.ID)
	if err != nil || count != 1 {
		t.Fatalf("CountByCourse: count=%d err=%v", count, err)
	}
	roster, err := repo.ListByCourse(dbc, course.ID)
	if err != nil || len(roster) != 1 {
		t.Fatalf("ListByCourse: err=%v n=%d", err, len(roster))
	}

	ok, err = repo.Delete(dbc, student.ID, course.ID)
	if err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}
	ok, err = repo.Delete(dbc, student.ID, course.ID)
	if err != nil || ok {
		t.Fatalf("Delete (again): ok=%v err=%v", ok, err)
	}
}
