package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/http/response"
	"github.com/yungbote/edulearn-backend/internal/services"
)

type questionRequest struct {
	Statement     string   `json:"statement"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer *string  `json:"correct_answer"`
	Grade         float64  `json:"grade"`
	Sequence      int      `json:"sequence"`
}

func (r questionRequest) input() services.ExamQuestionInput {
	return services.ExamQuestionInput{
		Statement:     r.Statement,
		Type:          types.QuestionType(r.Type),
		Options:       r.Options,
		CorrectAnswer: r.CorrectAnswer,
		Grade:         r.Grade,
		Sequence:      r.Sequence,
	}
}

type ExamDefinitionHandler struct {
	definitionService services.ExamDefinitionService
	questionService   services.ExamQuestionService
}

func NewExamDefinitionHandler(definitionService services.ExamDefinitionService, questionService services.ExamQuestionService) *ExamDefinitionHandler {
	return &ExamDefinitionHandler{definitionService: definitionService, questionService: questionService}
}

// GET /api/courses/:id/exam-definitions
func (h *ExamDefinitionHandler) ListPublished(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.definitionService.ListPublished(c.Request.Context(), courseID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"exam_definitions": out})
}

// GET /api/courses/:id/exam-definitions/manage?published=true|false
func (h *ExamDefinitionHandler) ListForOwner(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	published, ok := queryBool(c, "published")
	if !ok {
		return
	}
	out, err := h.definitionService.ListForOwner(c.Request.Context(), userID, courseID, published)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"exam_definitions": out})
}

// POST /api/courses/:id/exam-definitions
func (h *ExamDefinitionHandler) Create(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.definitionService.Create(c.Request.Context(), userID, courseID, services.ExamDefinitionInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"exam_definition": d})
}

// GET /api/exam-definitions/:id
func (h *ExamDefinitionHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	d, err := h.definitionService.Get(c.Request.Context(), optionalUserID(c), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"exam_definition": d})
}

// PUT /api/exam-definitions/:id
func (h *ExamDefinitionHandler) Update(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.definitionService.Update(c.Request.Context(), userID, id, services.ExamDefinitionInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"exam_definition": d})
}

// POST /api/exam-definitions/:id/publish
func (h *ExamDefinitionHandler) Publish(c *gin.Context) {
	h.setPublished(c, true)
}

// POST /api/exam-definitions/:id/unpublish
func (h *ExamDefinitionHandler) Unpublish(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *ExamDefinitionHandler) setPublished(c *gin.Context, published bool) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var (
		d   *types.ExamDefinition
		err error
	)
	if published {
		d, err = h.definitionService.Publish(c.Request.Context(), userID, id)
	} else {
		d, err = h.definitionService.Unpublish(c.Request.Context(), userID, id)
	}
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"exam_definition": d})
}

// DELETE /api/exam-definitions/:id
func (h *ExamDefinitionHandler) Delete(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.definitionService.Delete(c.Request.Context(), userID, id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/exam-definitions/:id/questions
func (h *ExamDefinitionHandler) ListQuestions(c *gin.Context) {
	definitionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.questionService.ListByDefinition(c.Request.Context(), optionalUserID(c), definitionID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"questions": out})
}

// POST /api/exam-definitions/:id/questions
func (h *ExamDefinitionHandler) AddQuestion(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	definitionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req questionRequest
	if !bindJSON(c, &req) {
		return
	}
	q, err := h.questionService.Add(c.Request.Context(), userID, definitionID, req.input())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"question": q})
}

// PUT /api/exam-questions/:id
func (h *ExamDefinitionHandler) UpdateQuestion(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req questionRequest
	if !bindJSON(c, &req) {
		return
	}
	q, err := h.questionService.Update(c.Request.Context(), userID, id, req.input())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"question": q})
}

// DELETE /api/exam-questions/:id
func (h *ExamDefinitionHandler) DeleteQuestion(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.questionService.Delete(c.Request.Context(), userID, id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondNoContent(c)
}
