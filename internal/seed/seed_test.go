package seed

import (
	"context"
	"strings"
	"testing"

	types "github.com/yungbote/edulearn-backend/internal/domain"
	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
	"github.com/yungbote/edulearn-backend/internal/services"
)

const fixture = `
professors:
  - name: Ana Souza
    email: ana@example.com
    password: secret123
    specialization: Mathematics
    courses:
      - title: Algebra I
        category: math
        price: 49.9
        hours_load: 20
        classrooms:
          - title: Equations
            exercises:
              - statement: "2+2?"
                type: multiple_choice
                options: ["3", "4"]
                correct_answer: "4"
        exams:
          - title: Final
            publish: true
            questions:
              - statement: "Is 1 prime?"
                type: TRUE_FALSE
                correct_answer: "false"
                grade: 5
              - statement: Explain factoring.
                type: essay
                grade: 5
  - name: Bruno Lima
    email: taken@example.com
    password: secret123
`

type stubAuth struct {
	services.AuthService
	registered []services.RegisterInput
}

func (s *stubAuth) Register(_ context.Context, in services.RegisterInput) (*types.User, error) {
	if in.Email == "taken@example.com" {
		return nil, apperr.Conflict("email already registered")
	}
	s.registered = append(s.registered, in)
	return &types.User{ID: int64(len(s.registered)), Email: in.Email, Type: in.Type}, nil
}

type stubCourse struct{ services.CourseService }

func (stubCourse) Create(_ context.Context, professorID int64, in services.CourseInput) (*types.Course, error) {
	return &types.Course{ID: 10, ProfessorID: professorID, Title: in.Title}, nil
}

type stubClassroom struct {
	services.ClassroomService
	sequences []int
}

func (s *stubClassroom) Create(_ context.Context, _, courseID int64, in services.ClassroomInput) (*types.Classroom, error) {
	s.sequences = append(s.sequences, in.Sequence)
	return &types.Classroom{ID: 20, CourseID: courseID, Title: in.Title}, nil
}

type stubExercise struct {
	services.ExerciseService
	got []services.ExerciseInput
}

func (s *stubExercise) Create(_ context.Context, _, _ int64, in services.ExerciseInput) (*types.Exercise, error) {
	s.got = append(s.got, in)
	return &types.Exercise{ID: 30}, nil
}

type stubDefinition struct {
	services.ExamDefinitionService
	published []int64
}

func (s *stubDefinition) Create(_ context.Context, _, courseID int64, in services.ExamDefinitionInput) (*types.ExamDefinition, error) {
	return &types.ExamDefinition{ID: 40, CourseID: courseID, Title: in.Title}, nil
}

func (s *stubDefinition) Publish(_ context.Context, _, id int64) (*types.ExamDefinition, error) {
	s.published = append(s.published, id)
	return &types.ExamDefinition{ID: id, Published: true}, nil
}

type stubQuestion struct {
	services.ExamQuestionService
	got []services.ExamQuestionInput
}

func (s *stubQuestion) Add(_ context.Context, _, _ int64, in services.ExamQuestionInput) (*types.ExamQuestion, error) {
	s.got = append(s.got, in)
	return &types.ExamQuestion{ID: int64(len(s.got))}, nil
}

func TestApplyCatalog(t *testing.T) {
	cat, err := Parse(strings.NewReader(fixture))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	auth := &stubAuth{}
	rooms := &stubClassroom{}
	exercises := &stubExercise{}
	defs := &stubDefinition{}
	questions := &stubQuestion{}
	svc := Services{
		Auth:           auth,
		Course:         stubCourse{},
		Classroom:      rooms,
		Exercise:       exercises,
		ExamDefinition: defs,
		ExamQuestion:   questions,
	}

	rep, err := Apply(context.Background(), logger.Nop(), svc, cat)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := Report{Professors: 1, Skipped: 1, Courses: 1, Classrooms: 1, Exercises: 1, Exams: 1, Questions: 2}
	if rep != want {
		t.Fatalf("report: got %+v want %+v", rep, want)
	}
	if auth.registered[0].Type != types.UserTypeProfessor || auth.registered[0].Specialization == nil {
		t.Fatalf("professor registered without type/specialization: %+v", auth.registered[0])
	}
	if len(rooms.sequences) != 1 || rooms.sequences[0] != 1 {
		t.Fatalf("classroom sequences: %v", rooms.sequences)
	}
	if exercises.got[0].Type != types.QuestionTypeMultipleChoice || *exercises.got[0].CorrectAnswer != "4" {
		t.Fatalf("exercise input: %+v", exercises.got[0])
	}
	if questions.got[1].CorrectAnswer != nil || questions.got[1].Sequence != 2 {
		t.Fatalf("essay question input: %+v", questions.got[1])
	}
	if len(defs.published) != 1 || defs.published[0] != 40 {
		t.Fatalf("published: %v", defs.published)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	if _, err := Parse(strings.NewReader("professors:\n  - nmae: typo\n")); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestApplyRejectsUnknownQuestionType(t *testing.T) {
	cat := &Catalog{Professors: []Professor{{
		Email: "p@example.com",
		Courses: []Course{{
			Title:      "C",
			Classrooms: []Classroom{{Title: "R", Exercises: []Question{{Statement: "?", Type: "matching"}}}},
		}},
	}}}
	svc := Services{Auth: &stubAuth{}, Course: stubCourse{}, Classroom: &stubClassroom{}, Exercise: &stubExercise{}}
	if _, err := Apply(context.Background(), logger.Nop(), svc, cat); err == nil || !strings.Contains(err.Error(), "unknown type") {
		t.Fatalf("expected unknown type error, got %v", err)
	}
}
