package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/edulearn-backend/internal/http/response"
	"github.com/yungbote/edulearn-backend/internal/services"
)

type EnrollmentHandler struct {
	enrollmentService services.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// POST /api/courses/:id/enroll
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	e, err := h.enrollmentService.MakeEnroll(c.Request.Context(), userID, courseID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"enrollment": e})
}

// DELETE /api/courses/:id/enroll
func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.enrollmentService.Unenroll(c.Request.Context(), userID, courseID); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/courses/:id/enrolled
func (h *EnrollmentHandler) IsEnrolled(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	enrolled, err := h.enrollmentService.IsEnrolled(c.Request.Context(), userID, courseID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"enrolled": enrolled})
}

// PUT /api/courses/:id/progress
// body: { "progress": 0.5 }
func (h *EnrollmentHandler) UpdateProgress(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Progress float64 `json:"progress"`
	}
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.enrollmentService.UpdateProgress(c.Request.Context(), userID, courseID, req.Progress)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"enrollment": e})
}

// GET /api/courses/:id/enrollments
func (h *EnrollmentHandler) ListByCourse(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.enrollmentService.ListByCourse(c.Request.Context(), userID, courseID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"enrollments": out})
}

// GET /api/me/enrollments
func (h *EnrollmentHandler) ListMine(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	out, err := h.enrollmentService.ListByStudent(c.Request.Context(), userID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"enrollments": out})
}
