package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/yungbote/edulearn-backend/internal/data/aggregates"
	"github.com/yungbote/edulearn-backend/internal/data/repos"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

// QuestionResult is the per-question outcome of an exam attempt. Correct and
// Points are nil for questions that need manual grading.
type QuestionResult struct {
	QuestionID int64    `json:"question_id"`
	Answer     string   `json:"answer"`
	Correct    *bool    `json:"correct,omitempty"`
	Points     *float64 `json:"points,omitempty"`
	MaxPoints  float64  `json:"max_points"`
}

type AttemptResult struct {
	Exam      *types.Exam      `json:"exam"`
	Questions []QuestionResult `json:"questions"`
	MaxScore  float64          `json:"max_score"`
	Pending   int              `json:"pending"`
}

type ExamService interface {
	SubmitCourseEvaluation(ctx context.Context, studentID, courseID int64, grade float64, comment *string) (*types.Exam, error)
	UpdateCourseEvaluation(ctx context.Context, studentID, examID int64, grade float64, comment *string) (*types.Exam, error)
	// SubmitExamAttempt scores answers (question id to text) against a
	// published definition. Each student gets one attempt per definition.
	SubmitExamAttempt(ctx context.Context, studentID, definitionID int64, answers map[int64]string) (*AttemptResult, error)

	GetByID(ctx context.Context, actingUserID, id int64) (*types.Exam, error)
	ListEvaluations(ctx context.Context, courseID int64) ([]*types.Exam, error)
	ListAttempts(ctx context.Context, professorID, definitionID int64) ([]*types.Exam, error)
	ListMine(ctx context.Context, studentID int64) ([]*types.Exam, error)
	Delete(ctx context.Context, actingUserID, id int64) error
}

type examService struct {
	w              writer
	log            *logger.Logger
	userRepo       repos.UserRepo
	examRepo       repos.ExamRepo
	enrollmentRepo repos.EnrollmentRepo
	own            courseOwnership
}

func NewExamService(
	base aggregates.BaseDeps,
	log *logger.Logger,
	userRepo repos.UserRepo,
	courseRepo repos.CourseRepo,
	definitionRepo repos.ExamDefinitionRepo,
	questionRepo repos.ExamQuestionRepo,
	examRepo repos.ExamRepo,
	enrollmentRepo repos.EnrollmentRepo,
) ExamService {
	serviceLog := log.With("service", "ExamService")
	return &examService{
		w:              newWriter(base, serviceLog),
		log:            serviceLog,
		userRepo:       userRepo,
		examRepo:       examRepo,
		enrollmentRepo: enrollmentRepo,
		own:            courseOwnership{courses: courseRepo, definitions: definitionRepo, questions: questionRepo},
	}
}

func (s *examService) SubmitCourseEvaluation(ctx context.Context, studentID, courseID int64, grade float64, comment *string) (*types.Exam, error) {
	if err := validGrade(grade); err != nil {
		return nil, err
	}
	comment = optionalText(comment)
	var out *types.Exam
	err := s.w.do(ctx, "ExamService.SubmitCourseEvaluation", func(dbc dbctx.Context) error {
		if _, err := requireUser(dbc, s.userRepo, studentID, types.UserTypeStudent); err != nil {
			return err
		}
		if _, err := s.own.course(dbc, courseID); err != nil {
			return err
		}
		if err := requireEnrolled(dbc, s.enrollmentRepo, studentID, courseID); err != nil {
			return err
		}
		prev, err := s.examRepo.GetCourseEvaluation(dbc, studentID, courseID)
		if err != nil {
			return err
		}
		if prev != nil {
			return apperr.Conflict(fmt.Sprintf("student %d already evaluated course %d", studentID, courseID))
		}
		g := grade
		e := &types.Exam{
			CourseID:  courseID,
			StudentID: studentID,
			Grade:     &g,
			Comment:   comment,
			HourDate:  nowUTC(),
			Submitted: true,
		}
		if _, err := s.examRepo.Save(dbc, e); err != nil {
			return err
		}
		out = e
		return nil
	}, "student_id", studentID, "course_id", courseID)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *examService) UpdateCourseEvaluation(ctx context.Context, studentID, examID int64, grade float64, comment *string) (*types.Exam, error) {
	if err := requireID("exam id", examID); err != nil {
		return nil, err
	}
	if err := validGrade(grade); err != nil {
		return nil, err
	}
	comment = optionalText(comment)
	var out *types.Exam
	err := s.w.do(ctx, "ExamService.UpdateCourseEvaluation", func(dbc dbctx.Context) error {
		e, err := s.examRepo.GetByID(dbc, examID)
		if err != nil {
			return err
		}
		if e == nil || !e.IsCourseEvaluation() {
			return apperr.NotFound("course evaluation", examID)
		}
		if e.StudentID != studentID {
			return apperr.Unauthorized(fmt.Sprintf("user %d is not the author of evaluation %d", studentID, examID))
		}
		g := grade
		e.Grade = &g
		e.Comment = comment
		e.HourDate = nowUTC()
		ok, err := s.examRepo.Update(dbc, e)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Persistence("ExamService.UpdateCourseEvaluation", nil)
		}
		out = e
		return nil
	}, "student_id", studentID, "exam_id", examID)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *examService) SubmitExamAttempt(ctx context.Context, studentID, definitionID int64, answers map[int64]string) (*AttemptResult, error) {
	var out *AttemptResult
	err := s.w.do(ctx, "ExamService.SubmitExamAttempt", func(dbc dbctx.Context) error {
		if _, err := requireUser(dbc, s.userRepo, studentID, types.UserTypeStudent); err != nil {
			return err
		}
		d, c, err := s.own.definition(dbc, definitionID)
		if err != nil {
			return err
		}
		if !d.Published {
			return apperr.NotFound("exam definition", definitionID)
		}
		if err := requireEnrolled(dbc, s.enrollmentRepo, studentID, c.ID); err != nil {
			return err
		}
		prev, err := s.examRepo.GetAttempt(dbc, studentID, definitionID)
		if err != nil {
			return err
		}
		if prev != nil {
			return apperr.Conflict(fmt.Sprintf("student %d already attempted exam definition %d", studentID, definitionID))
		}
		questions, err := s.own.questions.ListByDefinition(dbc, definitionID)
		if err != nil {
			return err
		}
		res, err := scoreAttempt(questions, answers)
		if err != nil {
			return err
		}
		defID := definitionID
		score := 0.0
		for _, q := range res.Questions {
			if q.Points != nil {
				score += *q.Points
			}
		}
		e := &types.Exam{
			CourseID:         c.ID,
			ExamDefinitionID: &defID,
			StudentID:        studentID,
			Grade:            &score,
			HourDate:         nowUTC(),
			Submitted:        true,
		}
		if _, err := s.examRepo.Save(dbc, e); err != nil {
			return err
		}
		res.Exam = e
		out = res
		return nil
	}, "student_id", studentID, "exam_definition_id", definitionID)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// scoreAttempt grades each question in sequence order. Unanswered
// auto-graded questions score zero.
func scoreAttempt(questions []*types.ExamQuestion, answers map[int64]string) (*AttemptResult, error) {
	known := make(map[int64]struct{}, len(questions))
	for _, q := range questions {
		known[q.ID] = struct{}{}
	}
	unknown := make([]int64, 0)
	for id := range answers {
		if _, ok := known[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
		return nil, apperr.InvalidInputf("answers reference unknown questions %v", unknown)
	}

	res := &AttemptResult{Questions: make([]QuestionResult, 0, len(questions))}
	for _, q := range questions {
		ans := answers[q.ID]
		qr := QuestionResult{QuestionID: q.ID, Answer: ans, MaxPoints: q.Grade}
		qr.Correct, qr.Points = AutoGrade(q.Type, q.CorrectAnswer, ans, q.Grade)
		if qr.Points == nil {
			res.Pending++
		}
		res.MaxScore += q.Grade
		res.Questions = append(res.Questions, qr)
	}
	return res, nil
}

func (s *examService) GetByID(ctx context.Context, actingUserID, id int64) (*types.Exam, error) {
	const op = "ExamService.GetByID"
	if err := requireID("exam id", id); err != nil {
		return nil, err
	}
	dbc := read(ctx)
	e, err := s.examRepo.GetByID(dbc, id)
	if err == nil && e == nil {
		err = apperr.NotFound("exam", id)
	}
	if err != nil {
		return nil, mapRead(s.log, op, err, "exam_id", id)
	}
	if e.StudentID == actingUserID {
		return e, nil
	}
	if _, err := s.own.ownedCourse(dbc, e.CourseID, actingUserID); err != nil {
		return nil, mapRead(s.log, op, err, "exam_id", id)
	}
	return e, nil
}

func (s *examService) ListEvaluations(ctx context.Context, courseID int64) ([]*types.Exam, error) {
	const op = "ExamService.ListEvaluations"
	dbc := read(ctx)
	if _, err := s.own.course(dbc, courseID); err != nil {
		return nil, mapRead(s.log, op, err, "course_id", courseID)
	}
	out, err := s.examRepo.ListEvaluationsByCourse(dbc, courseID)
	if err != nil {
		return nil, mapRead(s.log, op, err, "course_id", courseID)
	}
	return out, nil
}

func (s *examService) ListAttempts(ctx context.Context, professorID, definitionID int64) ([]*types.Exam, error) {
	const op = "ExamService.ListAttempts"
	dbc := read(ctx)
	if _, _, err := s.own.ownedDefinition(dbc, definitionID, professorID); err != nil {
		return nil, mapRead(s.log, op, err, "exam_definition_id", definitionID)
	}
	out, err := s.examRepo.ListAttemptsByDefinition(dbc, definitionID)
	if err != nil {
		return nil, mapRead(s.log, op, err, "exam_definition_id", definitionID)
	}
	return out, nil
}

func (s *examService) ListMine(ctx context.Context, studentID int64) ([]*types.Exam, error) {
	if err := requireID("student id", studentID); err != nil {
		return nil, err
	}
	out, err := s.examRepo.ListByStudent(read(ctx), studentID)
	if err != nil {
		return nil, mapRead(s.log, "ExamService.ListMine", err, "student_id", studentID)
	}
	return out, nil
}

// Delete is allowed to the exam's student and to the course's professor.
func (s *examService) Delete(ctx context.Context, actingUserID, id int64) error {
	return s.w.do(ctx, "ExamService.Delete", func(dbc dbctx.Context) error {
		e, err := s.examRepo.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if e == nil {
			return apperr.NotFound("exam", id)
		}
		if e.StudentID != actingUserID {
			if _, err := s.own.ownedCourse(dbc, e.CourseID, actingUserID); err != nil {
				return err
			}
		}
		ok, err := s.examRepo.Delete(dbc, id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("exam", id)
		}
		return nil
	}, "exam_id", id, "acting_user_id", actingUserID)
}
