package services

import (
	"context"

	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/realtime"
)

// Notifier fans committed writes out to realtime subscribers. Delivery is
// best effort and never fails the write that triggered it.
type Notifier interface {
	CommentCreated(c *types.Comment)
	DoubtCreated(d *types.Doubt, professorID int64)
	DoubtAnswered(d *types.Doubt)
	DoubtClosed(d *types.Doubt)
	AnswerGraded(a *types.ExerciseAnswer)
	ExamDefinitionPublished(d *types.ExamDefinition)
	VisitorQuestionAnswered(q *types.VisitorQuestion)
	EnrollmentCreated(e *types.Enrollment, professorID int64)
}

type notifier struct {
	emit SSEEmitter
}

func NewNotifier(emit SSEEmitter) Notifier {
	return &notifier{emit: emit}
}

// NopNotifier drops every event.
func NopNotifier() Notifier { return &notifier{} }

func (n *notifier) send(channel string, event realtime.SSEEvent, data any) {
	if n == nil || n.emit == nil || channel == "" {
		return
	}
	n.emit.Emit(context.Background(), realtime.SSEMessage{Channel: channel, Event: event, Data: data})
}

func (n *notifier) CommentCreated(c *types.Comment) {
	if c == nil {
		return
	}
	n.send(realtime.CourseChannel(c.CourseID), realtime.SSEEventCommentCreated, map[string]any{"comment": c})
}

func (n *notifier) DoubtCreated(d *types.Doubt, professorID int64) {
	if d == nil {
		return
	}
	data := map[string]any{"doubt": d}
	n.send(realtime.CourseChannel(d.CourseID), realtime.SSEEventDoubtCreated, data)
	if professorID > 0 {
		n.send(realtime.UserChannel(professorID), realtime.SSEEventDoubtCreated, data)
	}
}

func (n *notifier) DoubtAnswered(d *types.Doubt) {
	if d == nil {
		return
	}
	data := map[string]any{"doubt": d}
	n.send(realtime.UserChannel(d.StudentID), realtime.SSEEventDoubtAnswered, data)
	n.send(realtime.CourseChannel(d.CourseID), realtime.SSEEventDoubtAnswered, data)
}

func (n *notifier) DoubtClosed(d *types.Doubt) {
	if d == nil {
		return
	}
	n.send(realtime.CourseChannel(d.CourseID), realtime.SSEEventDoubtClosed, map[string]any{"doubt": d})
}

func (n *notifier) AnswerGraded(a *types.ExerciseAnswer) {
	if a == nil {
		return
	}
	n.send(realtime.UserChannel(a.StudentID), realtime.SSEEventAnswerGraded, map[string]any{
		"answer_id":   a.ID,
		"exercise_id": a.ExerciseID,
		"course_id":   a.CourseID,
		"correct":     a.Correct,
		"grade":       a.Grade,
		"feedback":    a.Feedback,
	})
}

func (n *notifier) ExamDefinitionPublished(d *types.ExamDefinition) {
	if d == nil {
		return
	}
	n.send(realtime.CourseChannel(d.CourseID), realtime.SSEEventExamDefinitionPublished, map[string]any{
		"exam_definition_id": d.ID,
		"course_id":          d.CourseID,
		"title":              d.Title,
	})
}

func (n *notifier) VisitorQuestionAnswered(q *types.VisitorQuestion) {
	if q == nil {
		return
	}
	n.send(realtime.ProfessorsChannel, realtime.SSEEventVisitorQuestionAnswered, map[string]any{"visitor_question": q})
}

func (n *notifier) EnrollmentCreated(e *types.Enrollment, professorID int64) {
	if e == nil || professorID <= 0 {
		return
	}
	n.send(realtime.UserChannel(professorID), realtime.SSEEventEnrollmentCreated, map[string]any{
		"student_id": e.StudentID,
		"course_id":  e.CourseID,
	})
}
