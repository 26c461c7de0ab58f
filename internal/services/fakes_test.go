package services

import (
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yungbote/edulearn-backend/internal/data/aggregates"
	aggtest "github.com/yungbote/edulearn-backend/internal/data/aggregates/testutil"
	"github.com/yungbote/edulearn-backend/internal/data/repos"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
	"github.com/yungbote/edulearn-backend/internal/pkg/pointers"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

// fakeStore backs every fake repository with maps and counts each write by
// operation name.
type fakeStore struct {
	mu     sync.Mutex
	nextID int64
	writes map[string]int

	users       map[int64]*types.User
	courses     map[int64]*types.Course
	classrooms  map[int64]*types.Classroom
	exercises   map[int64]*types.Exercise
	answers     map[int64]*types.ExerciseAnswer
	definitions map[int64]*types.ExamDefinition
	questions   map[int64]*types.ExamQuestion
	exams       map[int64]*types.Exam
	enrollments map[[2]int64]*types.Enrollment
	comments    map[int64]*types.Comment
	doubts      map[int64]*types.Doubt
	newsletter  map[int64]*types.NewsletterInscription
	visitors    map[int64]*types.VisitorQuestion
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		writes:      map[string]int{},
		users:       map[int64]*types.User{},
		courses:     map[int64]*types.Course{},
		classrooms:  map[int64]*types.Classroom{},
		exercises:   map[int64]*types.Exercise{},
		answers:     map[int64]*types.ExerciseAnswer{},
		definitions: map[int64]*types.ExamDefinition{},
		questions:   map[int64]*types.ExamQuestion{},
		exams:       map[int64]*types.Exam{},
		enrollments: map[[2]int64]*types.Enrollment{},
		comments:    map[int64]*types.Comment{},
		doubts:      map[int64]*types.Doubt{},
		newsletter:  map[int64]*types.NewsletterInscription{},
		visitors:    map[int64]*types.VisitorQuestion{},
	}
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) wrote(op string) { s.writes[op]++ }

func (s *fakeStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.writes {
		n += c
	}
	return n
}

func (s *fakeStore) writesOf(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes[op]
}

func (s *fakeStore) studentName(id int64) string {
	if u := s.users[id]; u != nil {
		return u.Name
	}
	return ""
}

// fixture helpers write directly and are not counted.

func (s *fakeStore) addStudent(name string) *types.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := types.NewStudent(name, strings.ToLower(name)+"@example.com", "hash:secret123")
	u.ID = s.id()
	s.users[u.ID] = clone(u)
	return u
}

func (s *fakeStore) addProfessor(name string) *types.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := types.NewProfessor(name, strings.ToLower(name)+"@example.com", "hash:secret123", "Math")
	u.ID = s.id()
	s.users[u.ID] = clone(u)
	return u
}

func (s *fakeStore) putUser(u *types.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = clone(u)
	if u.ID > s.nextID {
		s.nextID = u.ID
	}
}

func (s *fakeStore) putCourse(c *types.Course) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses[c.ID] = clone(c)
	if c.ID > s.nextID {
		s.nextID = c.ID
	}
}

func (s *fakeStore) addCourse(professorID int64, title string) *types.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &types.Course{ID: s.id(), Title: title, Category: "General", ProfessorID: professorID, CreationDate: time.Now().UTC()}
	s.courses[c.ID] = clone(c)
	return c
}

func (s *fakeStore) addClassroom(courseID int64, title string) *types.Classroom {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &types.Classroom{ID: s.id(), CourseID: courseID, Title: title}
	s.classrooms[c.ID] = clone(c)
	return c
}

func (s *fakeStore) addExercise(classroomID int64, qt types.QuestionType, correct *string) *types.Exercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := &types.Exercise{ID: s.id(), ClassroomID: classroomID, Statement: "2 + 2 = ?", Type: qt, Options: []string{"3", "4"}, CorrectAnswer: correct}
	s.exercises[e.ID] = clone(e)
	return e
}

func (s *fakeStore) addDefinition(courseID int64, published bool) *types.ExamDefinition {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := &types.ExamDefinition{ID: s.id(), CourseID: courseID, Title: "Midterm", Published: published, CreationDate: time.Now().UTC()}
	s.definitions[d.ID] = clone(d)
	return d
}

func (s *fakeStore) addQuestion(definitionID int64, qt types.QuestionType, correct *string, points float64, seq int) *types.ExamQuestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := &types.ExamQuestion{ID: s.id(), ExamDefinitionID: definitionID, Statement: "q", Type: qt, CorrectAnswer: correct, Grade: points, Sequence: seq}
	s.questions[q.ID] = clone(q)
	return q
}

func (s *fakeStore) enroll(studentID, courseID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enrollments[[2]int64{studentID, courseID}] = &types.Enrollment{StudentID: studentID, CourseID: courseID, EnrollmentDate: time.Now().UTC()}
}

func (s *fakeStore) addDoubt(courseID, studentID int64, status types.DoubtStatus) *types.Doubt {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := &types.Doubt{ID: s.id(), CourseID: courseID, StudentID: studentID, Title: "why", Status: status, CreatedAt: time.Now().UTC()}
	s.doubts[d.ID] = clone(d)
	return d
}

func (s *fakeStore) addAnswer(exerciseID, studentID int64) *types.ExerciseAnswer {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := &types.ExerciseAnswer{ID: s.id(), ExerciseID: exerciseID, StudentID: studentID, AnswerText: "4", SendDate: time.Now().UTC()}
	if ex := s.exercises[exerciseID]; ex != nil {
		a.ClassroomID = ex.ClassroomID
		if cl := s.classrooms[ex.ClassroomID]; cl != nil {
			a.CourseID = cl.CourseID
		}
	}
	s.answers[a.ID] = clone(a)
	return a
}

// addExam records an attempt at definitionID, or a course evaluation when
// definitionID is zero.
func (s *fakeStore) addExam(courseID, definitionID, studentID int64) *types.Exam {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := &types.Exam{ID: s.id(), CourseID: courseID, StudentID: studentID, HourDate: time.Now().UTC()}
	if definitionID > 0 {
		e.ExamDefinitionID = &definitionID
	}
	s.exams[e.ID] = clone(e)
	return e
}

func (s *fakeStore) addComment(courseID, studentID int64) *types.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &types.Comment{ID: s.id(), CourseID: courseID, StudentID: studentID, Text: "nice", HourDate: time.Now().UTC()}
	s.comments[c.ID] = clone(c)
	return c
}

func (s *fakeStore) addAnsweredVisitorQuestion(professorID int64) *types.VisitorQuestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	q := &types.VisitorQuestion{
		ID: s.id(), VisitorName: "Vic", VisitorEmail: "vic@example.com", QuestionText: "hours?", QuestionHour: now,
		Answer: pointers.String("daily"), AnswerHour: &now, ProfessorResponsibleID: &professorID,
	}
	s.visitors[q.ID] = clone(q)
	return q
}

// ----- users -----

type fakeUserRepo struct{ s *fakeStore }

func (r fakeUserRepo) Save(_ dbctx.Context, u *types.User) (*types.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.users {
		if o.Email == u.Email {
			return nil, apperr.Conflict("duplicate email")
		}
	}
	u.ID = r.s.id()
	r.s.users[u.ID] = clone(u)
	r.s.wrote("user.save")
	return u, nil
}

func (r fakeUserRepo) GetByID(_ dbctx.Context, id int64) (*types.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.users[id]), nil
}

func (r fakeUserRepo) GetByIDs(_ dbctx.Context, ids []int64) ([]*types.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*types.User
	for _, id := range ids {
		if u := r.s.users[id]; u != nil {
			out = append(out, clone(u))
		}
	}
	return out, nil
}

func (r fakeUserRepo) GetByEmail(_ dbctx.Context, email string) (*types.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == strings.ToLower(email) {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (r fakeUserRepo) EmailExists(dbc dbctx.Context, email string) (bool, error) {
	u, err := r.GetByEmail(dbc, email)
	return u != nil, err
}

func (r fakeUserRepo) ListByType(_ dbctx.Context, t types.UserType) ([]*types.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*types.User
	for _, u := range r.s.users {
		if u.Type == t {
			out = append(out, clone(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeUserRepo) Update(_ dbctx.Context, u *types.User) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur := r.s.users[u.ID]
	if cur == nil {
		return false, nil
	}
	cur.Name, cur.Email, cur.Specialization = u.Name, u.Email, u.Specialization
	r.s.wrote("user.update")
	return true, nil
}

func (r fakeUserRepo) UpdatePasswordHash(_ dbctx.Context, id int64, hash string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur := r.s.users[id]
	if cur == nil {
		return false, nil
	}
	cur.PasswordHash = hash
	r.s.wrote("user.password")
	return true, nil
}

func (r fakeUserRepo) Delete(_ dbctx.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.users[id] == nil {
		return false, nil
	}
	delete(r.s.users, id)
	r.s.wrote("user.delete")
	return true, nil
}

// ----- courses -----

type fakeCourseRepo struct{ s *fakeStore }

func (r fakeCourseRepo) withProfessor(c *types.Course) *types.Course {
	out := clone(c)
	out.Professor = clone(r.s.users[c.ProfessorID])
	return out
}

func (r fakeCourseRepo) Save(_ dbctx.Context, c *types.Course) (*types.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.id()
	row := clone(c)
	row.Professor = nil
	r.s.courses[c.ID] = row
	r.s.wrote("course.save")
	return c, nil
}

func (r fakeCourseRepo) GetByID(_ dbctx.Context, id int64) (*types.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := r.s.courses[id]
	if c == nil {
		return nil, nil
	}
	return r.withProfessor(c), nil
}

func (r fakeCourseRepo) GetByIDs(dbc dbctx.Context, ids []int64) ([]*types.Course, error) {
	var out []*types.Course
	for _, id := range ids {
		c, _ := r.GetByID(dbc, id)
		if c != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r fakeCourseRepo) list(keep func(*types.Course) bool) []*types.Course {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*types.Course
	for _, c := range r.s.courses {
		if keep(c) {
			out = append(out, r.withProfessor(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

func (r fakeCourseRepo) ListCatalog(_ dbctx.Context, category string) ([]*types.Course, error) {
	return r.list(func(c *types.Course) bool { return category == "" || c.Category == category }), nil
}

func (r fakeCourseRepo) ListByProfessor(_ dbctx.Context, professorID int64) ([]*types.Course, error) {
	return r.list(func(c *types.Course) bool { return c.ProfessorID == professorID }), nil
}

func (r fakeCourseRepo) SearchByTitle(_ dbctx.Context, q string) ([]*types.Course, error) {
	q = strings.ToLower(q)
	return r.list(func(c *types.Course) bool { return strings.Contains(strings.ToLower(c.Title), q) }), nil
}

func (r fakeCourseRepo) ListCategories(_ dbctx.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, c := range r.list(func(*types.Course) bool { return true }) {
		if c.Category != "" && !seen[c.Category] {
			seen[c.Category] = true
			out = append(out, c.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r fakeCourseRepo) Update(_ dbctx.Context, c *types.Course) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.courses[c.ID] == nil {
		return false, nil
	}
	row := clone(c)
	row.Professor = nil
	r.s.courses[c.ID] = row
	r.s.wrote("course.update")
	return true, nil
}

func (r fakeCourseRepo) UpdatePresentationVideo(_ dbctx.Context, id int64, url string, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := r.s.courses[id]
	if c == nil {
		return false, nil
	}
	c.PresentationVideoURL = &url
	c.UpdateDate = &at
	r.s.wrote("course.video")
	return true, nil
}

func (r fakeCourseRepo) Delete(_ dbctx.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.courses[id] == nil {
		return false, nil
	}
	delete(r.s.courses, id)
	r.s.wrote("course.delete")
	return true, nil
}

// ----- classrooms -----

type fakeClassroomRepo struct{ s *fakeStore }

func (r fakeClassroomRepo) Save(_ dbctx.Context, c *types.Classroom) (*types.Classroom, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.id()
	r.s.classrooms[c.ID] = clone(c)
	r.s.wrote("classroom.save")
	return c, nil
}

func (r fakeClassroomRepo) GetByID(_ dbctx.Context, id int64) (*types.Classroom, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.classrooms[id]), nil
}

func (r fakeClassroomRepo) ListByCourse(_ dbctx.Context, courseID int64) ([]*types.Classroom, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*types.Classroom
	for _, c := range r.s.classrooms {
		if c.CourseID == courseID {
			out = append(out, clone(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sequence != out[j].Sequence {
			return out[i].Sequence < out[j].Sequence
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r fakeClassroomRepo) Update(_ dbctx.Context, c *types.Classroom) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.classrooms[c.ID] == nil {
		return false, nil
	}
	r.s.classrooms[c.ID] = clone(c)
	r.s.wrote("classroom.update")
	return true, nil
}

func (r fakeClassroomRepo) UpdateContentURL(_ dbctx.Context, id int64, url string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := r.s.classrooms[id]
	if c == nil {
		return false, nil
	}
	c.ContentURL = &url
	r.s.wrote("classroom.content")
	return true, nil
}

func (r fakeClassroomRepo) Delete(_ dbctx.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.classrooms[id] == nil {
		return false, nil
	}
	delete(r.s.classrooms, id)
	r.s.wrote("classroom.delete")
	return true, nil
}

// ----- exercises -----

type fakeExerciseRepo struct{ s *fakeStore }

func (r fakeExerciseRepo) Save(_ dbctx.Context, e *types.Exercise) (*types.Exercise, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.ID = r.s.id()
	r.s.exercises[e.ID] = clone(e)
	r.s.wrote("exercise.save")
	return e, nil
}

func (r fakeExerciseRepo) GetByID(_ dbctx.Context, id int64) (*types.Exercise, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.exercises[id]), nil
}

func (r fakeExerciseRepo) ListByClassroom(_ dbctx.Context, classroomID int64) ([]*types.Exercise, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*types.Exercise
	for _, e := range r.s.exercises {
		if e.ClassroomID == classroomID {
			out = append(out, clone(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeExerciseRepo) Update(_ dbctx.Context, e *types.Exercise) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.exercises[e.ID] == nil {
		return false, nil
	}
	r.s.exercises[e.ID] = clone(e)
	r.s.wrote("exercise.update")
	return true, nil
}

func (r fakeExerciseRepo) Delete(_ dbctx.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.exercises[id] == nil {
		return false, nil
	}
	delete(r.s.exercises, id)
	r.s.wrote("exercise.delete")
	return true, nil
}

// ----- exercise answers -----

type fakeAnswerRepo struct{ s *fakeStore }

func (r fakeAnswerRepo) Save(_ dbctx.Context, a *types.ExerciseAnswer) (*types.ExerciseAnswer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.answers {
		if o.StudentID == a.StudentID && o.ExerciseID == a.ExerciseID {
			return nil, apperr.Conflict("duplicate answer")
		}
	}
	a.ID = r.s.id()
	r.s.answers[a.ID] = clone(a)
	r.s.wrote("answer.save")
	return a, nil
}

func (r fakeAnswerRepo) named(a *types.ExerciseAnswer) *types.ExerciseAnswer {
	out := clone(a)
	out.StudentName = r.s.studentName(a.StudentID)
	return out
}

func (r fakeAnswerRepo) GetByID(_ dbctx.Context, id int64) (*types.ExerciseAnswer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a := r.s.answers[id]; a != nil {
		return r.named(a), nil
	}
	return nil, nil
}

func (r fakeAnswerRepo) GetByStudentAndExercise(_ dbctx.Context, studentID, exerciseID int64) (*types.ExerciseAnswer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.answers {
		if a.StudentID == studentID && a.ExerciseID == exerciseID {
			return r.named(a), nil
		}
	}
	return nil, nil
}

func (r fakeAnswerRepo) filter(keep func(*types.ExerciseAnswer) bool) []*types.ExerciseAnswer {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*types.ExerciseAnswer
	for _, a := range r.s.answers {
		if keep(a) {
			out = append(out, r.named(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r fakeAnswerRepo) ListByExercise(_ dbctx.Context, exerciseID int64) ([]*types.ExerciseAnswer, error) {
	return r.filter(func(a *types.ExerciseAnswer) bool { return a.ExerciseID == exerciseID }), nil
}

func (r fakeAnswerRepo) ListByStudentAndCourse(_ dbctx.Context, studentID, courseID int64) ([]*types.ExerciseAnswer, error) {
	return r.filter(func(a *types.ExerciseAnswer) bool { return a.StudentID == studentID && a.CourseID == courseID }), nil
}

func (r fakeAnswerRepo) ListUngradedByCourse(_ dbctx.Context, courseID int64) ([]*types.ExerciseAnswer, error) {
	return r.filter(func(a *types.ExerciseAnswer) bool { return a.CourseID == courseID && a.Grade == nil }), nil
}

func (r fakeAnswerRepo) Grade(_ dbctx.Context, id int64, correct bool, grade float64, feedback *string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a := r.s.answers[id]
	if a == nil {
		return false, nil
	}
	a.Correct, a.Grade, a.Feedback = &correct, &grade, feedback
	r.s.wrote("answer.grade")
	return true, nil
}

func (r fakeAnswerRepo) Update(_ dbctx.Context, a *types.ExerciseAnswer) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.answers[a.ID] == nil {
		return false, nil
	}
	r.s.answers[a.ID] = clone(a)
	r.s.wrote("answer.update")
	return true, nil
}

func (r fakeAnswerRepo) Delete(_ dbctx.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.answers[id] == nil {
		return false, nil
	}
	delete(r.s.answers, id)
	r.s.wrote("answer.delete")
	return true, nil
}

// ----- exam definitions -----

type fakeDefinitionRepo struct{ s *fakeStore }

func (r fakeDefinitionRepo) Save(_ dbctx.Context, d *types.ExamDefinition) (*types.ExamDefinition, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d.ID = r.s.id()
	r.s.definitions[d.ID] = clone(d)
	r.s.wrote("definition.save")
	return d, nil
}

func (r fakeDefinitionRepo) GetByID(_ dbctx.Context, id int64) (*types.ExamDefinition, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.definitions[id]), nil
}

func (r fakeDefinitionRepo) GetWithQuestions(dbc dbctx.Context, id int64) (*types.ExamDefinition, error) {
	d, _ := r.GetByID(dbc, id)
	if d == nil {
		return nil, nil
	}
	qs, _ := fakeQuestionRepo{s: r.s}.ListByDefinition(dbc, id)
	for _, q := range qs {
		d.Questions = append(d.Questions, *q)
	}
	return d, nil
}

func (r fakeDefinitionRepo) ListByCourse(_ dbctx.Context, courseID int64, publishedOnly bool) ([]*types.ExamDefinition, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*types.ExamDefinition
	for _, d := range r.s.definitions {
		if d.CourseID == courseID && (!publishedOnly || d.Published) {
			out = append(out, clone(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r fakeDefinitionRepo) SetPublished(_ dbctx.Context, id int64, published bool, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := r.s.definitions[id]
	if d == nil {
		return false, nil
	}
	d.Published = published
	d.UpdateDate = &at
	r.s.wrote("definition.publish")
	return true, nil
}

func (r fakeDefinitionRepo) Update(_ dbctx.Context, d *types.ExamDefinition) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.definitions[d.ID] == nil {
		return false, nil
	}
	row := clone(d)
	row.Questions = nil
	r.s.definitions[d.ID] = row
	r.s.wrote("definition.update")
	return true, nil
}

func (r fakeDefinitionRepo) Delete(_ dbctx.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.definitions[id] == nil {
		return false, nil
	}
	delete(r.s.definitions, id)
	r.s.wrote("definition.delete")
	return true, nil
}

// ----- exam questions -----

type fakeQuestionRepo struct{ s *fakeStore }

func (r fakeQuestionRepo) Save(_ dbctx.Context, q *types.ExamQuestion) (*types.ExamQuestion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q.ID = r.s.id()
	r.s.questions[q.ID] = clone(q)
	r.s.wrote("question.save")
	return q, nil
}

func (r fakeQuestionRepo) GetByID(_ dbctx.Context, id int64) (*types.ExamQuestion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.questions[id]), nil
}

func (r fakeQuestionRepo) ListByDefinition(_ dbctx.Context, definitionID int64) ([]*types.ExamQuestion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*types.ExamQuestion
	for _, q := range r.s.questions {
		if q.ExamDefinitionID == definitionID {
			out = append(out, clone(q))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sequence != out[j].Sequence {
			return out[i].Sequence < out[j].Sequence
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r fakeQuestionRepo) Update(_ dbctx.Context, q *types.ExamQuestion) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.questions[q.ID] == nil {
		return false, nil
	}
	r.s.questions[q.ID] = clone(q)
	r.s.wrote("question.update")
	return true, nil
}

func (r fakeQuestionRepo) Delete(_ dbctx.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.questions[id] == nil {
		return false, nil
	}
	delete(r.s.questions, id)
	r.s.wrote("question.delete")
	return true, nil
}

func (r fakeQuestionRepo) DeleteByDefinition(_ dbctx.Context, definitionID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, q := range r.s.questions {
		if q.ExamDefinitionID == definitionID {
			delete(r.s.questions, id)
			n++
		}
	}
	r.s.wrote("question.delete_by_definition")
	return n, nil
}

// ----- exams -----

type fakeExamRepo struct{ s *fakeStore }

func (r fakeExamRepo) Save(_ dbctx.Context, e *types.Exam) (*types.Exam, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.ID = r.s.id()
	r.s.exams[e.ID] = clone(e)
	r.s.wrote("exam.save")
	return e, nil
}

func (r fakeExamRepo) named(e *types.Exam) *types.Exam {
	out := clone(e)
	out.StudentName = r.s.studentName(e.StudentID)
	return out
}

func (r fakeExamRepo) find(keep func(*types.Exam) bool) []*types.Exam {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*types.Exam
	for _, e := range r.s.exams {
		if keep(e) {
			out = append(out, r.named(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func first(rows []*types.Exam) *types.Exam {
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}

func (r fakeExamRepo) GetByID(_ dbctx.Context, id int64) (*types.Exam, error) {
	return first(r.find(func(e *types.Exam) bool { return e.ID == id })), nil
}

func (r fakeExamRepo) GetCourseEvaluation(_ dbctx.Context, studentID, courseID int64) (*types.Exam, error) {
	return first(r.find(func(e *types.Exam) bool {
		return e.StudentID == studentID && e.CourseID == courseID && e.ExamDefinitionID == nil
	})), nil
}

func (r fakeExamRepo) GetAttempt(_ dbctx.Context, studentID, definitionID int64) (*types.Exam, error) {
	return first(r.find(func(e *types.Exam) bool {
		return e.StudentID == studentID && e.ExamDefinitionID != nil && *e.ExamDefinitionID == definitionID
	})), nil
}

func (r fakeExamRepo) ListEvaluationsByCourse(_ dbctx.Context, courseID int64) ([]*types.Exam, error) {
	return r.find(func(e *types.Exam) bool { return e.CourseID == courseID && e.ExamDefinitionID == nil }), nil
}

func (r fakeExamRepo) ListAttemptsByDefinition(_ dbctx.Context, definitionID int64) ([]*types.Exam, error) {
	return r.find(func(e *types.Exam) bool { return e.ExamDefinitionID != nil && *e.ExamDefinitionID == definitionID }), nil
}

func (r fakeExamRepo) ListByStudent(_ dbctx.Context, studentID int64) ([]*types.Exam, error) {
	return r.find(func(e *types.Exam) bool { return e.StudentID == studentID }), nil
}

func (r fakeExamRepo) AverageEvaluationGrade(dbc dbctx.Context, courseID int64) (*float64, error) {
	rows, _ := r.ListEvaluationsByCourse(dbc, courseID)
	var sum float64
	n := 0
	for _, e := range rows {
		if e.Grade != nil {
			sum += *e.Grade
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	avg := sum / float64(n)
	return &avg, nil
}

func (r fakeExamRepo) Update(_ dbctx.Context, e *types.Exam) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.exams[e.ID] == nil {
		return false, nil
	}
	r.s.exams[e.ID] = clone(e)
	r.s.wrote("exam.update")
	return true, nil
}

func (r fakeExamRepo) Delete(_ dbctx.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.exams[id] == nil {
		return false, nil
	}
	delete(r.s.exams, id)
	r.s.wrote("exam.delete")
	return true, nil
}

// ----- enrollments -----

type fakeEnrollmentRepo struct{ s *fakeStore }

func (r fakeEnrollmentRepo) Save(_ dbctx.Context, e *types.Enrollment) (*types.Enrollment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := [2]int64{e.StudentID, e.CourseID}
	if r.s.enrollments[k] != nil {
		return nil, apperr.Conflict("already enrolled")
	}
	row := clone(e)
	row.Course = nil
	r.s.enrollments[k] = row
	r.s.wrote("enrollment.save")
	return e, nil
}

func (r fakeEnrollmentRepo) Get(_ dbctx.Context, studentID, courseID int64) (*types.Enrollment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.enrollments[[2]int64{studentID, courseID}]), nil
}

func (r fakeEnrollmentRepo) IsEnrolled(dbc dbctx.Context, studentID, courseID int64) (bool, error) {
	e, err := r.Get(dbc, studentID, courseID)
	return e != nil, err
}

func (r fakeEnrollmentRepo) filter(keep func(*types.Enrollment) bool) []*types.Enrollment {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*types.Enrollment
	for _, e := range r.s.enrollments {
		if keep(e) {
			out = append(out, clone(e))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CourseID != out[j].CourseID {
			return out[i].CourseID < out[j].CourseID
		}
		return out[i].StudentID < out[j].StudentID
	})
	return out
}

func (r fakeEnrollmentRepo) ListByStudent(_ dbctx.Context, studentID int64) ([]*types.Enrollment, error) {
	return r.filter(func(e *types.Enrollment) bool { return e.StudentID == studentID }), nil
}

func (r fakeEnrollmentRepo) ListByCourse(_ dbctx.Context, courseID int64) ([]*types.Enrollment, error) {
	return r.filter(func(e *types.Enrollment) bool { return e.CourseID == courseID }), nil
}

func (r fakeEnrollmentRepo) CountByCourse(dbc dbctx.Context, courseID int64) (int64, error) {
	rows, _ := r.ListByCourse(dbc, courseID)
	return int64(len(rows)), nil
}

func (r fakeEnrollmentRepo) UpdateProgress(_ dbctx.Context, studentID, courseID int64, progress float64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e := r.s.enrollments[[2]int64{studentID, courseID}]
	if e == nil {
		return false, nil
	}
	e.Progress = progress
	r.s.wrote("enrollment.progress")
	return true, nil
}

func (r fakeEnrollmentRepo) Delete(_ dbctx.Context, studentID, courseID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := [2]int64{studentID, courseID}
	if r.s.enrollments[k] == nil {
		return false, nil
	}
	delete(r.s.enrollments, k)
	r.s.wrote("enrollment.delete")
	return true, nil
}

// ----- comments -----

type fakeCommentRepo struct{ s *fakeStore }

func (r fakeCommentRepo) Save(_ dbctx.Context, c *types.Comment) (*types.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.id()
	r.s.comments[c.ID] = clone(c)
	r.s.wrote("comment.save")
	return c, nil
}

func (r fakeCommentRepo) named(c *types.Comment) *types.Comment {
	out := clone(c)
	out.StudentName = r.s.studentName(c.StudentID)
	return out
}

func (r fakeCommentRepo) GetByID(_ dbctx.Context, id int64) (*types.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c := r.s.comments[id]; c != nil {
		return r.named(c), nil
	}
	return nil, nil
}

func (r fakeCommentRepo) filter(keep func(*types.Comment) bool) []*types.Comment {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*types.Comment
	for _, c := range r.s.comments {
		if keep(c) {
			out = append(out, r.named(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r fakeCommentRepo) ListByCourse(_ dbctx.Context, courseID int64) ([]*types.Comment, error) {
	return r.filter(func(c *types.Comment) bool { return c.CourseID == courseID }), nil
}

func (r fakeCommentRepo) ListByStudent(_ dbctx.Context, studentID int64) ([]*types.Comment, error) {
	return r.filter(func(c *types.Comment) bool { return c.StudentID == studentID }), nil
}

func (r fakeCommentRepo) Update(_ dbctx.Context, c *types.Comment) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.comments[c.ID] == nil {
		return false, nil
	}
	r.s.comments[c.ID] = clone(c)
	r.s.wrote("comment.update")
	return true, nil
}

func (r fakeCommentRepo) UpdateText(_ dbctx.Context, id int64, text string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := r.s.comments[id]
	if c == nil {
		return false, nil
	}
	c.Text = text
	r.s.wrote("comment.update_text")
	return true, nil
}

func (r fakeCommentRepo) Delete(_ dbctx.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.comments[id] == nil {
		return false, nil
	}
	delete(r.s.comments, id)
	r.s.wrote("comment.delete")
	return true, nil
}

// ----- doubts -----

type fakeDoubtRepo struct{ s *fakeStore }

func (r fakeDoubtRepo) Save(_ dbctx.Context, d *types.Doubt) (*types.Doubt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if d.Status == "" {
		d.Status = types.DoubtStatusOpen
	}
	d.ID = r.s.id()
	r.s.doubts[d.ID] = clone(d)
	r.s.wrote("doubt.save")
	return d, nil
}

func (r fakeDoubtRepo) named(d *types.Doubt) *types.Doubt {
	out := clone(d)
	out.StudentName = r.s.studentName(d.StudentID)
	return out
}

func (r fakeDoubtRepo) GetByID(_ dbctx.Context, id int64) (*types.Doubt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if d := r.s.doubts[id]; d != nil {
		return r.named(d), nil
	}
	return nil, nil
}

func (r fakeDoubtRepo) filter(keep func(*types.Doubt) bool) []*types.Doubt {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*types.Doubt
	for _, d := range r.s.doubts {
		if keep(d) {
			out = append(out, r.named(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r fakeDoubtRepo) ListByCourse(_ dbctx.Context, courseID int64, status types.DoubtStatus) ([]*types.Doubt, error) {
	return r.filter(func(d *types.Doubt) bool { return d.CourseID == courseID && (status == "" || d.Status == status) }), nil
}

func (r fakeDoubtRepo) ListByStudent(_ dbctx.Context, studentID int64) ([]*types.Doubt, error) {
	return r.filter(func(d *types.Doubt) bool { return d.StudentID == studentID }), nil
}

func (r fakeDoubtRepo) Transition(_ dbctx.Context, id int64, from []types.DoubtStatus, updates map[string]any) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := r.s.doubts[id]
	if d == nil {
		return false, nil
	}
	allowed := false
	for _, st := range from {
		if d.Status == st {
			allowed = true
		}
	}
	if !allowed {
		return false, nil
	}
	for k, v := range updates {
		switch k {
		case "status":
			d.Status = v.(types.DoubtStatus)
		case "answer":
			s := v.(string)
			d.Answer = &s
		case "answer_hour":
			t := v.(time.Time)
			d.AnswerHour = &t
		case "professor_id":
			p := v.(int64)
			d.ProfessorID = &p
		}
	}
	r.s.wrote("doubt.transition")
	return true, nil
}

func (r fakeDoubtRepo) Update(_ dbctx.Context, d *types.Doubt) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.doubts[d.ID] == nil {
		return false, nil
	}
	r.s.doubts[d.ID] = clone(d)
	r.s.wrote("doubt.update")
	return true, nil
}

func (r fakeDoubtRepo) Delete(_ dbctx.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.doubts[id] == nil {
		return false, nil
	}
	delete(r.s.doubts, id)
	r.s.wrote("doubt.delete")
	return true, nil
}

// ----- newsletter -----

type fakeNewsletterRepo struct{ s *fakeStore }

func (r fakeNewsletterRepo) Save(_ dbctx.Context, n *types.NewsletterInscription) (*types.NewsletterInscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.newsletter {
		if o.Email == n.Email {
			return nil, apperr.Conflict("duplicate email")
		}
	}
	n.ID = r.s.id()
	r.s.newsletter[n.ID] = clone(n)
	r.s.wrote("newsletter.save")
	return n, nil
}

func (r fakeNewsletterRepo) GetByID(_ dbctx.Context, id int64) (*types.NewsletterInscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.newsletter[id]), nil
}

func (r fakeNewsletterRepo) GetByEmail(_ dbctx.Context, email string) (*types.NewsletterInscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, n := range r.s.newsletter {
		if n.Email == email {
			return clone(n), nil
		}
	}
	return nil, nil
}

func (r fakeNewsletterRepo) ListActive(_ dbctx.Context) ([]*types.NewsletterInscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*types.NewsletterInscription
	for _, n := range r.s.newsletter {
		if n.Active {
			out = append(out, clone(n))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeNewsletterRepo) Update(_ dbctx.Context, n *types.NewsletterInscription) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.newsletter[n.ID] == nil {
		return false, nil
	}
	r.s.newsletter[n.ID] = clone(n)
	r.s.wrote("newsletter.update")
	return true, nil
}

func (r fakeNewsletterRepo) Delete(_ dbctx.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.newsletter[id] == nil {
		return false, nil
	}
	delete(r.s.newsletter, id)
	r.s.wrote("newsletter.delete")
	return true, nil
}

// ----- visitor questions -----

type fakeVisitorRepo struct{ s *fakeStore }

func (r fakeVisitorRepo) Save(_ dbctx.Context, q *types.VisitorQuestion) (*types.VisitorQuestion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q.ID = r.s.id()
	r.s.visitors[q.ID] = clone(q)
	r.s.wrote("visitor.save")
	return q, nil
}

func (r fakeVisitorRepo) GetByID(_ dbctx.Context, id int64) (*types.VisitorQuestion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.visitors[id]), nil
}

func (r fakeVisitorRepo) filter(keep func(*types.VisitorQuestion) bool) []*types.VisitorQuestion {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*types.VisitorQuestion
	for _, q := range r.s.visitors {
		if keep(q) {
			out = append(out, clone(q))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r fakeVisitorRepo) ListAll(_ dbctx.Context) ([]*types.VisitorQuestion, error) {
	return r.filter(func(*types.VisitorQuestion) bool { return true }), nil
}

func (r fakeVisitorRepo) ListUnanswered(_ dbctx.Context) ([]*types.VisitorQuestion, error) {
	return r.filter(func(q *types.VisitorQuestion) bool { return q.Answer == nil }), nil
}

func (r fakeVisitorRepo) Answer(_ dbctx.Context, id, professorID int64, answer string, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q := r.s.visitors[id]
	if q == nil || q.Answer != nil {
		return false, nil
	}
	q.Answer, q.AnswerHour, q.ProfessorResponsibleID = &answer, &at, &professorID
	r.s.wrote("visitor.answer")
	return true, nil
}

func (r fakeVisitorRepo) Update(_ dbctx.Context, q *types.VisitorQuestion) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.visitors[q.ID] == nil {
		return false, nil
	}
	r.s.visitors[q.ID] = clone(q)
	r.s.wrote("visitor.update")
	return true, nil
}

func (r fakeVisitorRepo) Delete(_ dbctx.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.visitors[id] == nil {
		return false, nil
	}
	delete(r.s.visitors, id)
	r.s.wrote("visitor.delete")
	return true, nil
}

var (
	_ repos.UserRepo            = fakeUserRepo{}
	_ repos.CourseRepo          = fakeCourseRepo{}
	_ repos.ClassroomRepo       = fakeClassroomRepo{}
	_ repos.ExerciseRepo        = fakeExerciseRepo{}
	_ repos.ExerciseAnswerRepo  = fakeAnswerRepo{}
	_ repos.ExamDefinitionRepo  = fakeDefinitionRepo{}
	_ repos.ExamQuestionRepo    = fakeQuestionRepo{}
	_ repos.ExamRepo            = fakeExamRepo{}
	_ repos.EnrollmentRepo      = fakeEnrollmentRepo{}
	_ repos.CommentRepo         = fakeCommentRepo{}
	_ repos.DoubtRepo           = fakeDoubtRepo{}
	_ repos.NewsletterRepo      = fakeNewsletterRepo{}
	_ repos.VisitorQuestionRepo = fakeVisitorRepo{}
)

// fakeHasher stores "hash:" + plain.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hash:" + plain, nil }
func (fakeHasher) Verify(plain, hash string) bool    { return plain != "" && hash == "hash:"+plain }

// recordingNotifier keeps event names in call order.
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) add(ev string) {
	n.mu.Lock()
	n.events = append(n.events, ev)
	n.mu.Unlock()
}

func (n *recordingNotifier) Events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

func (n *recordingNotifier) CommentCreated(*types.Comment)      { n.add("CommentCreated") }
func (n *recordingNotifier) DoubtCreated(*types.Doubt, int64)   { n.add("DoubtCreated") }
func (n *recordingNotifier) DoubtAnswered(*types.Doubt)         { n.add("DoubtAnswered") }
func (n *recordingNotifier) DoubtClosed(*types.Doubt)           { n.add("DoubtClosed") }
func (n *recordingNotifier) AnswerGraded(*types.ExerciseAnswer) { n.add("AnswerGraded") }
func (n *recordingNotifier) ExamDefinitionPublished(*types.ExamDefinition) {
	n.add("ExamDefinitionPublished")
}
func (n *recordingNotifier) VisitorQuestionAnswered(*types.VisitorQuestion) {
	n.add("VisitorQuestionAnswered")
}
func (n *recordingNotifier) EnrollmentCreated(*types.Enrollment, int64) { n.add("EnrollmentCreated") }

// harness wires every service over one fakeStore.
type harness struct {
	store  *fakeStore
	runner *aggtest.InjectedTxRunner
	hooks  *aggtest.HooksRecorder
	notify *recordingNotifier

	users       fakeUserRepo
	courses     fakeCourseRepo
	classrooms  fakeClassroomRepo
	exercises   fakeExerciseRepo
	answers     fakeAnswerRepo
	definitions fakeDefinitionRepo
	questions   fakeQuestionRepo
	exams       fakeExamRepo
	enrollments fakeEnrollmentRepo
	comments    fakeCommentRepo
	doubts      fakeDoubtRepo
	newsletter  fakeNewsletterRepo
	visitors    fakeVisitorRepo
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	s := newFakeStore()
	return &harness{
		store:       s,
		runner:      &aggtest.InjectedTxRunner{},
		hooks:       &aggtest.HooksRecorder{},
		notify:      &recordingNotifier{},
		users:       fakeUserRepo{s},
		courses:     fakeCourseRepo{s},
		classrooms:  fakeClassroomRepo{s},
		exercises:   fakeExerciseRepo{s},
		answers:     fakeAnswerRepo{s},
		definitions: fakeDefinitionRepo{s},
		questions:   fakeQuestionRepo{s},
		exams:       fakeExamRepo{s},
		enrollments: fakeEnrollmentRepo{s},
		comments:    fakeCommentRepo{s},
		doubts:      fakeDoubtRepo{s},
		newsletter:  fakeNewsletterRepo{s},
		visitors:    fakeVisitorRepo{s},
	}
}

func (h *harness) base() aggregates.BaseDeps {
	return aggregates.BaseDeps{Runner: h.runner, Hooks: h.hooks}
}

func (h *harness) log() *logger.Logger { return logger.Nop() }

func wantKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	if got := apperr.KindOf(err); got != kind {
		t.Fatalf("expected %s error, got %q (%v)", kind, got, err)
	}
}

// ----- bulk deletes -----

// removeWhere deletes matching rows under the store lock; match may read
// other maps of the store.
func removeWhere[K comparable, V any](s *fakeStore, op string, rows map[K]*V, match func(*V) bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for k, v := range rows {
		if match(v) {
			delete(rows, k)
			n++
		}
	}
	s.wrote(op)
	return n, nil
}

func (r fakeClassroomRepo) DeleteByCourse(_ dbctx.Context, courseID int64) (int64, error) {
	return removeWhere(r.s, "classroom.delete_by_course", r.s.classrooms, func(c *types.Classroom) bool { return c.CourseID == courseID })
}

func (r fakeExerciseRepo) DeleteByClassroom(_ dbctx.Context, classroomID int64) (int64, error) {
	return removeWhere(r.s, "exercise.delete_by_classroom", r.s.exercises, func(e *types.Exercise) bool { return e.ClassroomID == classroomID })
}

func (r fakeExerciseRepo) DeleteByCourse(_ dbctx.Context, courseID int64) (int64, error) {
	return removeWhere(r.s, "exercise.delete_by_course", r.s.exercises, func(e *types.Exercise) bool {
		cl := r.s.classrooms[e.ClassroomID]
		return cl != nil && cl.CourseID == courseID
	})
}

func (r fakeAnswerRepo) DeleteByExercise(_ dbctx.Context, exerciseID int64) (int64, error) {
	return removeWhere(r.s, "answer.delete_by_exercise", r.s.answers, func(a *types.ExerciseAnswer) bool { return a.ExerciseID == exerciseID })
}

func (r fakeAnswerRepo) DeleteByClassroom(_ dbctx.Context, classroomID int64) (int64, error) {
	return removeWhere(r.s, "answer.delete_by_classroom", r.s.answers, func(a *types.ExerciseAnswer) bool { return a.ClassroomID == classroomID })
}

func (r fakeAnswerRepo) DeleteByCourse(_ dbctx.Context, courseID int64) (int64, error) {
	return removeWhere(r.s, "answer.delete_by_course", r.s.answers, func(a *types.ExerciseAnswer) bool { return a.CourseID == courseID })
}

func (r fakeAnswerRepo) DeleteByStudent(_ dbctx.Context, studentID int64) (int64, error) {
	return removeWhere(r.s, "answer.delete_by_student", r.s.answers, func(a *types.ExerciseAnswer) bool { return a.StudentID == studentID })
}

func (r fakeQuestionRepo) DeleteByCourse(_ dbctx.Context, courseID int64) (int64, error) {
	return removeWhere(r.s, "question.delete_by_course", r.s.questions, func(q *types.ExamQuestion) bool {
		d := r.s.definitions[q.ExamDefinitionID]
		return d != nil && d.CourseID == courseID
	})
}

func (r fakeDefinitionRepo) DeleteByCourse(_ dbctx.Context, courseID int64) (int64, error) {
	return removeWhere(r.s, "definition.delete_by_course", r.s.definitions, func(d *types.ExamDefinition) bool { return d.CourseID == courseID })
}

func (r fakeExamRepo) DeleteByCourse(_ dbctx.Context, courseID int64) (int64, error) {
	return removeWhere(r.s, "exam.delete_by_course", r.s.exams, func(e *types.Exam) bool { return e.CourseID == courseID })
}

func (r fakeExamRepo) DeleteByDefinition(_ dbctx.Context, definitionID int64) (int64, error) {
	return removeWhere(r.s, "exam.delete_by_definition", r.s.exams, func(e *types.Exam) bool {
		return e.ExamDefinitionID != nil && *e.ExamDefinitionID == definitionID
	})
}

func (r fakeExamRepo) DeleteByStudent(_ dbctx.Context, studentID int64) (int64, error) {
	return removeWhere(r.s, "exam.delete_by_student", r.s.exams, func(e *types.Exam) bool { return e.StudentID == studentID })
}

func (r fakeEnrollmentRepo) DeleteByCourse(_ dbctx.Context, courseID int64) (int64, error) {
	return removeWhere(r.s, "enrollment.delete_by_course", r.s.enrollments, func(e *types.Enrollment) bool { return e.CourseID == courseID })
}

func (r fakeEnrollmentRepo) DeleteByStudent(_ dbctx.Context, studentID int64) (int64, error) {
	return removeWhere(r.s, "enrollment.delete_by_student", r.s.enrollments, func(e *types.Enrollment) bool { return e.StudentID == studentID })
}

func (r fakeCommentRepo) DeleteByCourse(_ dbctx.Context, courseID int64) (int64, error) {
	return removeWhere(r.s, "comment.delete_by_course", r.s.comments, func(c *types.Comment) bool { return c.CourseID == courseID })
}

func (r fakeCommentRepo) DeleteByStudent(_ dbctx.Context, studentID int64) (int64, error) {
	return removeWhere(r.s, "comment.delete_by_student", r.s.comments, func(c *types.Comment) bool { return c.StudentID == studentID })
}

func (r fakeDoubtRepo) DeleteByCourse(_ dbctx.Context, courseID int64) (int64, error) {
	return removeWhere(r.s, "doubt.delete_by_course", r.s.doubts, func(d *types.Doubt) bool { return d.CourseID == courseID })
}

func (r fakeDoubtRepo) DeleteByStudent(_ dbctx.Context, studentID int64) (int64, error) {
	return removeWhere(r.s, "doubt.delete_by_student", r.s.doubts, func(d *types.Doubt) bool { return d.StudentID == studentID })
}

func (r fakeVisitorRepo) ReleaseProfessor(_ dbctx.Context, professorID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, q := range r.s.visitors {
		if q.ProfessorResponsibleID != nil && *q.ProfessorResponsibleID == professorID {
			q.ProfessorResponsibleID = nil
			n++
		}
	}
	r.s.wrote("visitor.release_professor")
	return n, nil
}

func (h *harness) dependents() Dependents {
	return Dependents{
		Courses:     h.courses,
		Classrooms:  h.classrooms,
		Exercises:   h.exercises,
		Answers:     h.answers,
		Definitions: h.definitions,
		Questions:   h.questions,
		Exams:       h.exams,
		Enrollments: h.enrollments,
		Comments:    h.comments,
		Doubts:      h.doubts,
		Visitors:    h.visitors,
	}
}
