package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure independent of the layer that produced it.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindUnauthorized Kind = "unauthorized"
	KindInvalidInput Kind = "invalid_input"
	KindConflict     Kind = "conflict"
	KindPersistence  Kind = "persistence"
)

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for ownership/role failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidInput is a generic sentinel for invalid input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict is a generic sentinel for duplicate or state-rule violations.
	ErrConflict = errors.New("conflict")
	// ErrPersistence is a generic sentinel for store failures.
	ErrPersistence = errors.New("persistence failure")
)

var sentinels = map[Kind]error{
	KindNotFound:     ErrNotFound,
	KindUnauthorized: ErrUnauthorized,
	KindInvalidInput: ErrInvalidInput,
	KindConflict:     ErrConflict,
	KindPersistence:  ErrPersistence,
}

// Error is the canonical error carried from services to callers.
type Error struct {
	Kind    Kind
	Op      string
	Entity  string
	ID      int64
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := strings.TrimSpace(e.Message)
	if msg == "" && e.Entity != "" {
		msg = fmt.Sprintf("%s %d not found", e.Entity, e.ID)
	}
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if msg == "" {
		msg = string(e.Kind)
	}
	if op := strings.TrimSpace(e.Op); op != "" {
		return op + ": " + msg
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, ErrConflict) match any *Error of that kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	s, ok := sentinels[e.Kind]
	return ok && s == target
}

func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: strings.TrimSpace(message)}
}

func Newf(kind Kind, format string, args ...any) error {
	return New(kind, fmt.Sprintf(format, args...))
}

// NotFound names the entity kind and id that failed to resolve.
func NotFound(entity string, id int64) error {
	return &Error{Kind: KindNotFound, Entity: entity, ID: id}
}

func Unauthorized(message string) error { return New(KindUnauthorized, message) }

func InvalidInput(message string) error { return New(KindInvalidInput, message) }

func InvalidInputf(format string, args ...any) error {
	return Newf(KindInvalidInput, format, args...)
}

func Conflict(message string) error { return New(KindConflict, message) }

// Persistence wraps a store failure. A nil cause yields a generic message.
func Persistence(op string, cause error) error {
	e := &Error{Kind: KindPersistence, Op: strings.TrimSpace(op), Cause: cause}
	if cause == nil {
		e.Message = "store reported no affected rows"
	}
	return e
}

// WithOp returns a copy of err annotated with op when err is an *Error.
func WithOp(op string, err error) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	cp := *e
	if cp.Op == "" {
		cp.Op = strings.TrimSpace(op)
	}
	return &cp
}

// KindOf extracts the kind of err, or "" when err is not classified.
func KindOf(err error) Kind {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Kind
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
