package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/edulearn-backend/internal/http/response"
	"github.com/yungbote/edulearn-backend/internal/services"
)

type CommentHandler struct {
	commentService services.CommentService
}

func NewCommentHandler(commentService services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// GET /api/courses/:id/comments
func (h *CommentHandler) ListByCourse(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.commentService.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"comments": out})
}

// POST /api/courses/:id/comments
// body: { "text": "..." }
func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if !bindJSON(c, &req) {
		return
	}
	cm, err := h.commentService.Create(c.Request.Context(), courseID, userID, req.Text)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"comment": cm})
}

// GET /api/me/comments
func (h *CommentHandler) ListMine(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	out, err := h.commentService.ListByStudent(c.Request.Context(), userID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"comments": out})
}

// PUT /api/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if !bindJSON(c, &req) {
		return
	}
	cm, err := h.commentService.Update(c.Request.Context(), userID, id, req.Text)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"comment": cm})
}

// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.commentService.Delete(c.Request.Context(), userID, id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondNoContent(c)
}
