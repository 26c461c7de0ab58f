package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/edulearn-backend/internal/http/response"
	"github.com/yungbote/edulearn-backend/internal/services"
)

// PublicHandler serves the newsletter and visitor question endpoints used by
// the landing page.
type PublicHandler struct {
	newsletterService services.NewsletterService
	visitorService    services.VisitorQuestionService
}

func NewPublicHandler(newsletterService services.NewsletterService, visitorService services.VisitorQuestionService) *PublicHandler {
	return &PublicHandler{newsletterService: newsletterService, visitorService: visitorService}
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /api/newsletter/subscribe
func (h *PublicHandler) Subscribe(c *gin.Context) {
	var req emailRequest
	if !bindJSON(c, &req) {
		return
	}
	ins, err := h.newsletterService.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"inscription": ins})
}

// POST /api/newsletter/unsubscribe
func (h *PublicHandler) Unsubscribe(c *gin.Context) {
	var req emailRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.newsletterService.Unsubscribe(c.Request.Context(), req.Email); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/newsletter
func (h *PublicHandler) ListSubscribers(c *gin.Context) {
	out, err := h.newsletterService.ListActive(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"inscriptions": out})
}

// POST /api/visitor-questions
// body: { "name": "...", "email": "...", "question": "..." }
func (h *PublicHandler) Ask(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email" binding:"required,email"`
		Question string `json:"question"`
	}
	if !bindJSON(c, &req) {
		return
	}
	q, err := h.visitorService.Ask(c.Request.Context(), req.Name, req.Email, req.Question)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"question": q})
}

// GET /api/visitor-questions
func (h *PublicHandler) ListQuestions(c *gin.Context) {
	out, err := h.visitorService.ListAll(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"questions": out})
}

// GET /api/visitor-questions/unanswered
func (h *PublicHandler) ListUnanswered(c *gin.Context) {
	out, err := h.visitorService.ListUnanswered(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"questions": out})
}

// GET /api/visitor-questions/:id
func (h *PublicHandler) GetQuestion(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	q, err := h.visitorService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"question": q})
}

// POST /api/visitor-questions/:id/answer
func (h *PublicHandler) AnswerQuestion(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Answer string `json:"answer"`
	}
	if !bindJSON(c, &req) {
		return
	}
	q, err := h.visitorService.Answer(c.Request.Context(), userID, id, req.Answer)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"question": q})
}

// DELETE /api/visitor-questions/:id
func (h *PublicHandler) DeleteQuestion(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.visitorService.Delete(c.Request.Context(), userID, id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondNoContent(c)
}
