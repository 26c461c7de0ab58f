package middleware

import "errors"

var (
	errMissingToken  = errors.New("missing or invalid token")
	errInvalidToken  = errors.New("invalid or expired token")
	errProfessorOnly = errors.New("only professors may perform this action")
)
