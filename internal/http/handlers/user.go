package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/edulearn-backend/internal/http/response"
	"github.com/yungbote/edulearn-backend/internal/services"
)

type UserHandler struct {
	userService   services.UserService
	courseService services.CourseService
}

func NewUserHandler(userService services.UserService, courseService services.CourseService) *UserHandler {
	return &UserHandler{userService: userService, courseService: courseService}
}

// GET /api/me
func (uh *UserHandler) GetMe(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	me, err := uh.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"me": me})
}

// PATCH /api/users/:id
// body: { "name": "...", "specialization": "..." }
func (uh *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Name           string  `json:"name"`
		Specialization *string `json:"specialization"`
	}
	if !bindJSON(c, &req) {
		return
	}
	u, err := uh.userService.UpdateProfile(c.Request.Context(), userID, id, services.UpdateProfileInput{
		Name:           req.Name,
		Specialization: req.Specialization,
	})
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"user": u})
}

// PUT /api/me/password
func (uh *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if err := uh.userService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// DELETE /api/users/:id
func (uh *UserHandler) Delete(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := uh.userService.Delete(c.Request.Context(), userID, id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/professors
func (uh *UserHandler) ListProfessors(c *gin.Context) {
	out, err := uh.userService.ListProfessors(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"professors": out})
}

// GET /api/professors/:id
func (uh *UserHandler) GetProfessor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := uh.userService.GetProfessor(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"professor": p})
}

// GET /api/professors/:id/courses
func (uh *UserHandler) ListProfessorCourses(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := uh.courseService.ListByProfessor(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"courses": out})
}
