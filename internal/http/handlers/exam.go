package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/edulearn-backend/internal/http/response"
	"github.com/yungbote/edulearn-backend/internal/services"
)

type evaluationRequest struct {
	Grade   float64 `json:"grade"`
	Comment *string `json:"comment"`
}

type ExamHandler struct {
	examService services.ExamService
}

func NewExamHandler(examService services.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// GET /api/courses/:id/evaluations
func (h *ExamHandler) ListEvaluations(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.examService.ListEvaluations(c.Request.Context(), courseID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"evaluations": out})
}

// POST /api/courses/:id/evaluations
func (h *ExamHandler) SubmitEvaluation(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req evaluationRequest
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.examService.SubmitCourseEvaluation(c.Request.Context(), userID, courseID, req.Grade, req.Comment)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"exam": e})
}

// PUT /api/exams/:id
func (h *ExamHandler) UpdateEvaluation(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req evaluationRequest
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.examService.UpdateCourseEvaluation(c.Request.Context(), userID, id, req.Grade, req.Comment)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"exam": e})
}

// POST /api/exam-definitions/:id/attempts
// body: { "answers": [ { "question_id": 1, "answer": "..." } ] }
func (h *ExamHandler) SubmitAttempt(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	definitionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Answers []struct {
			QuestionID int64  `json:"question_id"`
			Answer     string `json:"answer"`
		} `json:"answers"`
	}
	if !bindJSON(c, &req) {
		return
	}
	answers := make(map[int64]string, len(req.Answers))
	for _, a := range req.Answers {
		answers[a.QuestionID] = a.Answer
	}
	res, err := h.examService.SubmitExamAttempt(c.Request.Context(), userID, definitionID, answers)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, res)
}

// GET /api/exam-definitions/:id/attempts
func (h *ExamHandler) ListAttempts(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	definitionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.examService.ListAttempts(c.Request.Context(), userID, definitionID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"exams": out})
}

// GET /api/exams/:id
func (h *ExamHandler) Get(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	e, err := h.examService.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"exam": e})
}

// GET /api/me/exams
func (h *ExamHandler) ListMine(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	out, err := h.examService.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"exams": out})
}

// DELETE /api/exams/:id
func (h *ExamHandler) Delete(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.examService.Delete(c.Request.Context(), userID, id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondNoContent(c)
}
