package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/edulearn-backend/internal/http/response"
	"github.com/yungbote/edulearn-backend/internal/services"
)

type classroomRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ContentURL  *string `json:"content_url"`
	Sequence    int     `json:"sequence"`
}

func (r classroomRequest) input() services.ClassroomInput {
	return services.ClassroomInput{
		Title:       r.Title,
		Description: r.Description,
		ContentURL:  r.ContentURL,
		Sequence:    r.Sequence,
	}
}

type ClassroomHandler struct {
	classroomService services.ClassroomService
	mediaService     services.MediaService
}

func NewClassroomHandler(classroomService services.ClassroomService, mediaService services.MediaService) *ClassroomHandler {
	return &ClassroomHandler{classroomService: classroomService, mediaService: mediaService}
}

// GET /api/courses/:id/classrooms
func (h *ClassroomHandler) ListByCourse(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.classroomService.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"classrooms": out})
}

// POST /api/courses/:id/classrooms
func (h *ClassroomHandler) Create(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req classroomRequest
	if !bindJSON(c, &req) {
		return
	}
	cl, err := h.classroomService.Create(c.Request.Context(), userID, courseID, req.input())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"classroom": cl})
}

// GET /api/classrooms/:id
func (h *ClassroomHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cl, err := h.classroomService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"classroom": cl})
}

// PUT /api/classrooms/:id
func (h *ClassroomHandler) Update(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req classroomRequest
	if !bindJSON(c, &req) {
		return
	}
	cl, err := h.classroomService.Update(c.Request.Context(), userID, id, req.input())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"classroom": cl})
}

// DELETE /api/classrooms/:id
func (h *ClassroomHandler) Delete(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.classroomService.Delete(c.Request.Context(), userID, id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// POST /api/classrooms/:id/content (multipart/form-data)
// field: "file"
func (h *ClassroomHandler) UploadContent(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	f, name, ok := openUpload(c)
	if !ok {
		return
	}
	defer f.Close()

	cl, err := h.mediaService.UploadClassroomContent(c.Request.Context(), userID, id, name, f)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"classroom": cl})
}
