package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/http/response"
	"github.com/yungbote/edulearn-backend/internal/services"
)

type DoubtHandler struct {
	doubtService services.DoubtService
}

func NewDoubtHandler(doubtService services.DoubtService) *DoubtHandler {
	return &DoubtHandler{doubtService: doubtService}
}

// GET /api/courses/:id/doubts?status=OPEN|ANSWERED|CLOSED
func (h *DoubtHandler) ListByCourse(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.doubtService.ListByCourse(c.Request.Context(), courseID, types.DoubtStatus(c.Query("status")))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"doubts": out})
}

// POST /api/courses/:id/doubts
// body: { "title": "...", "description": "..." }
func (h *DoubtHandler) Create(c *gin.Context) {
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
	d, err := h.doubtService.Create(c.Request.Context(), courseID, userID, req.Title, req.Description)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"doubt": d})
}

// GET /api/me/doubts
func (h *DoubtHandler) ListMine(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	out, err := h.doubtService.ListByStudent(c.Request.Context(), userID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"doubts": out})
}

// GET /api/doubts/:id
func (h *DoubtHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	d, err := h.doubtService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"doubt": d})
}

// POST /api/doubts/:id/answer
// body: { "answer": "..." }
func (h *DoubtHandler) Answer(c *gin.Context) {
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
	d, err := h.doubtService.Answer(c.Request.Context(), userID, id, req.Answer)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"doubt": d})
}

// POST /api/doubts/:id/close
func (h *DoubtHandler) Close(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	d, err := h.doubtService.Close(c.Request.Context(), userID, id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"doubt": d})
}

// DELETE /api/doubts/:id
func (h *DoubtHandler) Delete(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.doubtService.Delete(c.Request.Context(), userID, id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondNoContent(c)
}
