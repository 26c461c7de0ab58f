// Package seed loads a YAML catalog fixture through the service layer so
// every invariant the API enforces also holds for seeded data.
package seed

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	types "github.com/yungbote/edulearn-backend/internal/domain"
	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
	"github.com/yungbote/edulearn-backend/internal/services"
)

type Catalog struct {
	Professors []Professor `yaml:"professors"`
}

type Professor struct {
	Name           string   `yaml:"name"`
	Email          string   `yaml:"email"`
	Password       string   `yaml:"password"`
	Specialization string   `yaml:"specialization"`
	Courses        []Course `yaml:"courses"`
}

type Course struct {
	Title       string           `yaml:"title"`
	Description string           `yaml:"description"`
	Price       float64          `yaml:"price"`
	Category    string           `yaml:"category"`
	HoursLoad   int              `yaml:"hours_load"`
	Classrooms  []Classroom      `yaml:"classrooms"`
	Exams       []ExamDefinition `yaml:"exams"`
}

type Classroom struct {
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	ContentURL  string     `yaml:"content_url"`
	Exercises   []Question `yaml:"exercises"`
}

type ExamDefinition struct {
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Publish     bool       `yaml:"publish"`
	Questions   []Question `yaml:"questions"`
}

// Question is shared by exercises and exam questions. Grade is ignored for
// exercises.
type Question struct {
	Statement     string   `yaml:"statement"`
	Type          string   `yaml:"type"`
	Options       []string `yaml:"options"`
	CorrectAnswer string   `yaml:"correct_answer"`
	Grade         float64  `yaml:"grade"`
}

func Parse(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return &c, nil
}

type Services struct {
	Auth           services.AuthService
	Course         services.CourseService
	Classroom      services.ClassroomService
	Exercise       services.ExerciseService
	ExamDefinition services.ExamDefinitionService
	ExamQuestion   services.ExamQuestionService
}

type Report struct {
	Professors int
	Skipped    int
	Courses    int
	Classrooms int
	Exercises  int
	Exams      int
	Questions  int
}

// Apply creates the catalog. Professors whose email is already registered
// are skipped with their courses so re-running a fixture is harmless.
func Apply(ctx context.Context, log *logger.Logger, svc Services, c *Catalog) (Report, error) {
	var rep Report
	for _, p := range c.Professors {
		var spec *string
		if p.Specialization != "" {
			s := p.Specialization
			spec = &s
		}
		u, err := svc.Auth.Register(ctx, services.RegisterInput{
			Name:           p.Name,
			Email:          p.Email,
			Password:       p.Password,
			Type:           types.UserTypeProfessor,
			Specialization: spec,
		})
		if apperr.IsKind(err, apperr.KindConflict) {
			log.Info("professor already registered, skipping", "email", p.Email)
			rep.Skipped++
			continue
		}
		if err != nil {
			return rep, fmt.Errorf("register %s: %w", p.Email, err)
		}
		rep.Professors++

		for _, cc := range p.Courses {
			if err := applyCourse(ctx, svc, u.ID, cc, &rep); err != nil {
				return rep, fmt.Errorf("course %q: %w", cc.Title, err)
			}
		}
	}
	return rep, nil
}

func applyCourse(ctx context.Context, svc Services, professorID int64, cc Course, rep *Report) error {
	course, err := svc.Course.Create(ctx, professorID, services.CourseInput{
		Title:       cc.Title,
		Description: cc.Description,
		Price:       cc.Price,
		Category:    cc.Category,
		HoursLoad:   cc.HoursLoad,
	})
	if err != nil {
		return err
	}
	rep.Courses++

	for i, cr := range cc.Classrooms {
		var contentURL *string
		if cr.ContentURL != "" {
			u := cr.ContentURL
			contentURL = &u
		}
		room, err := svc.Classroom.Create(ctx, professorID, course.ID, services.ClassroomInput{
			Title:       cr.Title,
			Description: cr.Description,
			ContentURL:  contentURL,
			Sequence:    i + 1,
		})
		if err != nil {
			return fmt.Errorf("classroom %q: %w", cr.Title, err)
		}
		rep.Classrooms++
		for _, q := range cr.Exercises {
			qt, correct, err := q.parse()
			if err != nil {
				return err
			}
			if _, err := svc.Exercise.Create(ctx, professorID, room.ID, services.ExerciseInput{
				Statement:     q.Statement,
				Type:          qt,
				Options:       q.Options,
				CorrectAnswer: correct,
			}); err != nil {
				return fmt.Errorf("exercise %q: %w", q.Statement, err)
			}
			rep.Exercises++
		}
	}

	for _, ex := range cc.Exams {
		def, err := svc.ExamDefinition.Create(ctx, professorID, course.ID, services.ExamDefinitionInput{
			Title:       ex.Title,
			Description: ex.Description,
		})
		if err != nil {
			return fmt.Errorf("exam %q: %w", ex.Title, err)
		}
		rep.Exams++
		for i, q := range ex.Questions {
			qt, correct, err := q.parse()
			if err != nil {
				return err
			}
			if _, err := svc.ExamQuestion.Add(ctx, professorID, def.ID, services.ExamQuestionInput{
				Statement:     q.Statement,
				Type:          qt,
				Options:       q.Options,
				CorrectAnswer: correct,
				Grade:         q.Grade,
				Sequence:      i + 1,
			}); err != nil {
				return fmt.Errorf("exam question %q: %w", q.Statement, err)
			}
			rep.Questions++
		}
		if ex.Publish {
			if _, err := svc.ExamDefinition.Publish(ctx, professorID, def.ID); err != nil {
				return fmt.Errorf("publish %q: %w", ex.Title, err)
			}
		}
	}
	return nil
}

func (q Question) parse() (types.QuestionType, *string, error) {
	qt, ok := types.ParseQuestionType(q.Type)
	if !ok {
		return "", nil, fmt.Errorf("question %q: unknown type %q", q.Statement, q.Type)
	}
	if q.CorrectAnswer == "" {
		return qt, nil, nil
	}
	ans := q.CorrectAnswer
	return qt, &ans, nil
}
