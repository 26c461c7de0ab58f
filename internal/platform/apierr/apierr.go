package apierr

import (
	"errors"
	"fmt"
	"net/http"

	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// FromError translates a service error into the status/code pair sent to
// clients. Unclassified errors become 500s.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return New(http.StatusNotFound, "not_found", err)
	case apperr.KindUnauthorized:
		return New(http.StatusForbidden, "forbidden", err)
	case apperr.KindInvalidInput:
		return New(http.StatusBadRequest, "invalid_input", err)
	case apperr.KindConflict:
		return New(http.StatusConflict, "conflict", err)
	case apperr.KindPersistence:
		return New(http.StatusInternalServerError, "persistence_failure", err)
	default:
		return New(http.StatusInternalServerError, "internal_error", err)
	}
}
