package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/http/response"
	"github.com/yungbote/edulearn-backend/internal/pkg/ctxutil"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
	"github.com/yungbote/edulearn-backend/internal/services"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	middlewareLogger := log.With("middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, authService: authService}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractTokenFromAll(c)
		if tokenString == "" {
			c.Abort()
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", errMissingToken)
			return
		}
		rd, err := am.authService.ParseToken(tokenString)
		if err != nil || rd == nil || rd.UserID <= 0 {
			am.log.Debug("Rejected access token", "error", err)
			c.Abort()
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", errInvalidToken)
			return
		}
		c.Request = c.Request.WithContext(ctxutil.WithRequestData(c.Request.Context(), rd))
		c.Next()
	}
}

// OptionalAuth attaches the caller when a valid token is present and never
// rejects the request.
func (am *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := extractTokenFromAll(c); tokenString != "" {
			if rd, err := am.authService.ParseToken(tokenString); err == nil && rd != nil && rd.UserID > 0 {
				c.Request = c.Request.WithContext(ctxutil.WithRequestData(c.Request.Context(), rd))
			}
		}
		c.Next()
	}
}

// RequireProfessor must run after RequireAuth.
func (am *AuthMiddleware) RequireProfessor() gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		if rd == nil || rd.UserType != string(types.UserTypeProfessor) {
			c.Abort()
			response.RespondError(c, http.StatusForbidden, "forbidden", errProfessorOnly)
			return
		}
		c.Next()
	}
}

func extractTokenFromAll(c *gin.Context) string {
	if qToken := c.Query("token"); qToken != "" {
		return qToken
	}
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
