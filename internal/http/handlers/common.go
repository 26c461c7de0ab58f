package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/edulearn-backend/internal/http/response"
	"github.com/yungbote/edulearn-backend/internal/pkg/ctxutil"
)

var (
	errNotAuthenticated = errors.New("not authenticated")
	errInvalidID        = errors.New("invalid id")
)

// actingUserID returns the authenticated caller, writing a 401 when absent.
func actingUserID(c *gin.Context) (int64, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID <= 0 {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errNotAuthenticated)
		return 0, false
	}
	return rd.UserID, true
}

// optionalUserID is 0 for anonymous callers on public routes.
func optionalUserID(c *gin.Context) int64 {
	if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
		return rd.UserID
	}
	return 0
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id <= 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", errInvalidID)
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return false
	}
	return true
}

// queryBool parses an optional boolean query parameter.
func queryBool(c *gin.Context, name string) (*bool, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New(name+" must be a boolean"))
		return nil, false
	}
	return &v, true
}
