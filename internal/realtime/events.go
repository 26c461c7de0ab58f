package realtime

import "strconv"

type SSEEvent string

const (
	SSEEventCommentCreated          SSEEvent = "CommentCreated"
	SSEEventDoubtCreated            SSEEvent = "DoubtCreated"
	SSEEventDoubtAnswered           SSEEvent = "DoubtAnswered"
	SSEEventDoubtClosed             SSEEvent = "DoubtClosed"
	SSEEventAnswerGraded            SSEEvent = "AnswerGraded"
	SSEEventExamDefinitionPublished SSEEvent = "ExamDefinitionPublished"
	SSEEventVisitorQuestionAnswered SSEEvent = "VisitorQuestionAnswered"
	SSEEventEnrollmentCreated       SSEEvent = "EnrollmentCreated"
)

type SSEMessage struct {
	Channel string   `json:"channel"`
	Event   SSEEvent `json:"event"`
	Data    any      `json:"data,omitempty"`
}

func UserChannel(userID int64) string {
	return "user:" + strconv.FormatInt(userID, 10)
}

func CourseChannel(courseID int64) string {
	return "course:" + strconv.FormatInt(courseID, 10)
}

// ProfessorsChannel reaches every connected professor.
const ProfessorsChannel = "professors"
