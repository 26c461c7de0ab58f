package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/http/response"
	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
	"github.com/yungbote/edulearn-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /api/register
// body: { "name", "email", "password", "type": "STUDENT"|"PROFESSOR", "specialization"? }
func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name           string  `json:"name"`
		Email          string  `json:"email" binding:"required,email"`
		Password       string  `json:"password"`
		Type           string  `json:"type"`
		Specialization *string `json:"specialization"`
	}
	if !bindJSON(c, &req) {
		return
	}
	u, err := ah.authService.Register(c.Request.Context(), services.RegisterInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Type:           types.UserType(req.Type),
		Specialization: req.Specialization,
	})
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"user": u})
}

// POST /api/login
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	session, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if apperr.IsKind(err, apperr.KindUnauthorized) {
		// Unknown email and wrong password look the same to the caller.
		response.RespondError(c, http.StatusUnauthorized, "invalid_credentials", err)
		return
	}
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"access_token": session.AccessToken,
		"expires_at":   session.ExpiresAt,
		"expires_in":   int(ah.authService.GetAccessTTL().Seconds()),
		"user":         session.User,
	})
}
