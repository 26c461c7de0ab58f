package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/http/response"
	"github.com/yungbote/edulearn-backend/internal/services"
)

type exerciseRequest struct {
	Statement     string   `json:"statement"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer *string  `json:"correct_answer"`
}

func (r exerciseRequest) input() services.ExerciseInput {
	return services.ExerciseInput{
		Statement:     r.Statement,
		Type:          types.QuestionType(r.Type),
		Options:       r.Options,
		CorrectAnswer: r.CorrectAnswer,
	}
}

type ExerciseHandler struct {
	exerciseService services.ExerciseService
	answerService   services.ExerciseAnswerService
}

func NewExerciseHandler(exerciseService services.ExerciseService, answerService services.ExerciseAnswerService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService, answerService: answerService}
}

// GET /api/classrooms/:id/exercises
func (h *ExerciseHandler) ListByClassroom(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	classroomID, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.exerciseService.ListByClassroom(c.Request.Context(), userID, classroomID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"exercises": out})
}

// POST /api/classrooms/:id/exercises
func (h *ExerciseHandler) Create(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	classroomID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req exerciseRequest
	if !bindJSON(c, &req) {
		return
	}
	ex, err := h.exerciseService.Create(c.Request.Context(), userID, classroomID, req.input())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"exercise": ex})
}

// GET /api/exercises/:id
func (h *ExerciseHandler) Get(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ex, err := h.exerciseService.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"exercise": ex})
}

// PUT /api/exercises/:id
func (h *ExerciseHandler) Update(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req exerciseRequest
	if !bindJSON(c, &req) {
		return
	}
	ex, err := h.exerciseService.Update(c.Request.Context(), userID, id, req.input())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"exercise": ex})
}

// DELETE /api/exercises/:id
func (h *ExerciseHandler) Delete(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.exerciseService.Delete(c.Request.Context(), userID, id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// POST /api/exercises/:id/answers
// body: { "answer": "..." }
func (h *ExerciseHandler) SubmitAnswer(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	exerciseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Answer string `json:"answer"`
	}
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.answerService.Submit(c.Request.Context(), userID, exerciseID, req.Answer)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"answer": a})
}

// GET /api/exercises/:id/answers
func (h *ExerciseHandler) ListAnswers(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	exerciseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.answerService.ListByExercise(c.Request.Context(), userID, exerciseID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"answers": out})
}

// GET /api/answers/:id
func (h *ExerciseHandler) GetAnswer(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, err := h.answerService.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"answer": a})
}

// POST /api/answers/:id/grade
// body: { "correct": true, "grade": 7.5, "feedback": "..." }
func (h *ExerciseHandler) GradeAnswer(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Correct  bool    `json:"correct"`
		Grade    float64 `json:"grade"`
		Feedback *string `json:"feedback"`
	}
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.answerService.Grade(c.Request.Context(), userID, id, req.Correct, req.Grade, req.Feedback)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"answer": a})
}

// GET /api/courses/:id/answers/ungraded
func (h *ExerciseHandler) ListUngraded(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.answerService.ListUngraded(c.Request.Context(), userID, courseID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"answers": out})
}

// GET /api/courses/:id/answers/mine
func (h *ExerciseHandler) ListMine(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.answerService.ListMine(c.Request.Context(), userID, courseID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"answers": out})
}
