package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/http/response"
	"github.com/yungbote/edulearn-backend/internal/services"
)

// maxUploadBytes caps multipart bodies for video and classroom content.
const maxUploadBytes = 512 << 20

type courseRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	HoursLoad   int     `json:"hours_load"`
}

func (r courseRequest) input() services.CourseInput {
	return services.CourseInput{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		HoursLoad:   r.HoursLoad,
	}
}

type CourseHandler struct {
	courseService services.CourseService
	mediaService  services.MediaService
}

func NewCourseHandler(courseService services.CourseService, mediaService services.MediaService) *CourseHandler {
	return &CourseHandler{courseService: courseService, mediaService: mediaService}
}

// GET /api/courses?category=...&q=...
func (h *CourseHandler) List(c *gin.Context) {
	var (
		courses []*types.Course
		err     error
	)
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		courses, err = h.courseService.Search(c.Request.Context(), q)
	} else {
		courses, err = h.courseService.ListCatalog(c.Request.Context(), c.Query("category"))
	}
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	if courses == nil {
		courses = []*types.Course{}
	}
	response.RespondOK(c, gin.H{"courses": courses})
}

// GET /api/categories
func (h *CourseHandler) ListCategories(c *gin.Context) {
	out, err := h.courseService.ListCategories(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"categories": out})
}

// GET /api/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	course, err := h.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"course": course})
}

// GET /api/courses/:id/overview
func (h *CourseHandler) Overview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ov, err := h.courseService.GetOverview(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, ov)
}

// POST /api/courses
func (h *CourseHandler) Create(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	var req courseRequest
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.courseService.Create(c.Request.Context(), userID, req.input())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"course": course})
}

// PUT /api/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req courseRequest
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.courseService.Update(c.Request.Context(), userID, id, req.input())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"course": course})
}

// DELETE /api/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.courseService.Delete(c.Request.Context(), userID, id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// POST /api/courses/:id/video (multipart/form-data)
// field: "file"
func (h *CourseHandler) UploadPresentationVideo(c *gin.Context) {
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

	course, err := h.mediaService.UploadPresentationVideo(c.Request.Context(), userID, id, name, f)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"course": course})
}

// openUpload reads the "file" field of a multipart form, writing a 4xx on failure.
func openUpload(c *gin.Context) (multipart.File, string, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "missing_file", err)
		return nil, "", false
	}
	if fh.Size > maxUploadBytes {
		response.RespondError(c, http.StatusRequestEntityTooLarge, "file_too_large", errors.New("file exceeds upload limit"))
		return nil, "", false
	}
	f, err := fh.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "open_file_failed", err)
		return nil, "", false
	}
	return f, fh.Filename, true
}
