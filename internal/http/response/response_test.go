package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
)

func TestRespondAppErrorMapsKinds(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", apperr.NotFound("course", 10), http.StatusNotFound, "not_found"},
		{"unauthorized", apperr.Unauthorized("not the owner"), http.StatusForbidden, "forbidden"},
		{"invalid", apperr.InvalidInput("title is required"), http.StatusBadRequest, "invalid_input"},
		{"conflict", apperr.Conflict("already enrolled"), http.StatusConflict, "conflict"},
		{"persistence", apperr.Persistence("CourseService.Create", errors.New("dial tcp: refused")), http.StatusInternalServerError, "persistence_failure"},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			RespondAppError(c, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status: got=%d want=%d", rec.Code, tc.wantStatus)
			}
			var env ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode envelope: %v", err)
			}
			if env.Error.Code != tc.wantCode {
				t.Fatalf("code: got=%q want=%q", env.Error.Code, tc.wantCode)
			}
			if tc.wantStatus >= 500 && strings.Contains(env.Error.Message, "dial tcp") {
				t.Fatalf("internal cause leaked to client: %q", env.Error.Message)
			}
		})
	}
}

func TestRespondAppErrorKeepsClientMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	RespondAppError(c, apperr.Conflict("student 5 is not enrolled in course 10"))

	if !strings.Contains(rec.Body.String(), "not enrolled") {
		t.Fatalf("expected rule message in body, got %s", rec.Body.String())
	}
}
