package services

import (
	"context"
	"testing"

	types "github.com/yungbote/edulearn-backend/internal/domain"
	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
	"github.com/yungbote/edulearn-backend/internal/pkg/pointers"
)

func (h *harness) examService() ExamService {
	return NewExamService(h.base(), h.log(), h.users, h.courses, h.definitions, h.questions, h.exams, h.enrollments)
}

func TestCourseEvaluationOncePerStudent(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	p := h.store.addProfessor("Ada")
	s := h.store.addStudent("Sam")
	c := h.store.addCourse(p.ID, "Algebra")
	svc := h.examService()

	_, err := svc.SubmitCourseEvaluation(ctx, s.ID, c.ID, 9, nil)
	wantKind(t, err, apperr.KindConflict)

	h.store.enroll(s.ID, c.ID)
	_, err = svc.SubmitCourseEvaluation(ctx, s.ID, c.ID, 10.5, nil)
	wantKind(t, err, apperr.KindInvalidInput)

	e, err := svc.SubmitCourseEvaluation(ctx, s.ID, c.ID, 9, pointers.String("great"))
	if err != nil {
		t.Fatalf("SubmitCourseEvaluation: %v", err)
	}
	if !e.IsCourseEvaluation() || e.Grade == nil || *e.Grade != 9 {
		t.Fatalf("unexpected evaluation: %+v", e)
	}

	_, err = svc.SubmitCourseEvaluation(ctx, s.ID, c.ID, 7, nil)
	wantKind(t, err, apperr.KindConflict)

	up, err := svc.UpdateCourseEvaluation(ctx, s.ID, e.ID, 6, nil)
	if err != nil {
		t.Fatalf("UpdateCourseEvaluation: %v", err)
	}
	if *up.Grade != 6 {
		t.Fatalf("expected grade 6, got %v", *up.Grade)
	}
	other := h.store.addStudent("Tia")
	_, err = svc.UpdateCourseEvaluation(ctx, other.ID, e.ID, 1, nil)
	wantKind(t, err, apperr.KindUnauthorized)

	rows, err := svc.ListEvaluations(ctx, c.ID)
	if err != nil || len(rows) != 1 || rows[0].StudentName != "Sam" {
		t.Fatalf("ListEvaluations = %+v, %v", rows, err)
	}
}

func TestExamAttemptScoring(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	p := h.store.addProfessor("Ada")
	s := h.store.addStudent("Sam")
	c := h.store.addCourse(p.ID, "Algebra")
	d := h.store.addDefinition(c.ID, true)
	q1 := h.store.addQuestion(d.ID, types.QuestionTypeMultipleChoice, pointers.String("4"), 3, 1)
	q2 := h.store.addQuestion(d.ID, types.QuestionTypeTrueFalse, pointers.String("true"), 2, 2)
	q3 := h.store.addQuestion(d.ID, types.QuestionTypeEssay, nil, 5, 3)
	h.store.enroll(s.ID, c.ID)
	svc := h.examService()

	_, err := svc.SubmitExamAttempt(ctx, s.ID, d.ID, map[int64]string{999: "x"})
	wantKind(t, err, apperr.KindInvalidInput)

	res, err := svc.SubmitExamAttempt(ctx, s.ID, d.ID, map[int64]string{
		q1.ID: "4",
		q2.ID: "false",
		q3.ID: "long answer",
	})
	if err != nil {
		t.Fatalf("SubmitExamAttempt: %v", err)
	}
	if res.MaxScore != 10 || res.Pending != 1 {
		t.Fatalf("unexpected totals: max=%v pending=%d", res.MaxScore, res.Pending)
	}
	if res.Exam == nil || res.Exam.Grade == nil || *res.Exam.Grade != 3 {
		t.Fatalf("expected attempt grade 3, got %+v", res.Exam)
	}
	if len(res.Questions) != 3 || res.Questions[0].QuestionID != q1.ID || res.Questions[2].Points != nil {
		t.Fatalf("unexpected per-question results: %+v", res.Questions)
	}

	_, err = svc.SubmitExamAttempt(ctx, s.ID, d.ID, map[int64]string{q1.ID: "4"})
	wantKind(t, err, apperr.KindConflict)

	attempts, err := svc.ListAttempts(ctx, p.ID, d.ID)
	if err != nil || len(attempts) != 1 {
		t.Fatalf("ListAttempts = %d, %v", len(attempts), err)
	}
	_, err = svc.ListAttempts(ctx, s.ID, d.ID)
	wantKind(t, err, apperr.KindUnauthorized)
}

func TestExamAttemptRequiresPublishedDefinition(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	p := h.store.addProfessor("Ada")
	s := h.store.addStudent("Sam")
	c := h.store.addCourse(p.ID, "Algebra")
	d := h.store.addDefinition(c.ID, false)
	h.store.enroll(s.ID, c.ID)

	_, err := h.examService().SubmitExamAttempt(ctx, s.ID, d.ID, nil)
	wantKind(t, err, apperr.KindNotFound)
	if n := h.store.writeCount(); n != 0 {
		t.Fatalf("expected no writes, got %d", n)
	}
}

func TestExamDeletePermissions(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	p := h.store.addProfessor("Ada")
	s := h.store.addStudent("Sam")
	other := h.store.addStudent("Tia")
	c := h.store.addCourse(p.ID, "Algebra")
	h.store.enroll(s.ID, c.ID)
	svc := h.examService()

	e, err := svc.SubmitCourseEvaluation(ctx, s.ID, c.ID, 5, nil)
	if err != nil {
		t.Fatalf("SubmitCourseEvaluation: %v", err)
	}
	wantKind(t, svc.Delete(ctx, other.ID, e.ID), apperr.KindUnauthorized)
	_, err = svc.GetByID(ctx, other.ID, e.ID)
	wantKind(t, err, apperr.KindUnauthorized)
	if err := svc.Delete(ctx, p.ID, e.ID); err != nil {
		t.Fatalf("owner Delete: %v", err)
	}
	_, err = svc.GetByID(ctx, s.ID, e.ID)
	wantKind(t, err, apperr.KindNotFound)
}
