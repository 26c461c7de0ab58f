package aggregates

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
)

// MapError classifies infrastructure failures into the application error
// taxonomy. Already-classified errors pass through unchanged.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var classified *apperr.Error
	if errors.As(err, &classified) {
		return apperr.WithOp(op, err)
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &apperr.Error{Kind: apperr.KindNotFound, Op: op, Message: "record not found", Cause: err}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return apperr.Persistence(op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return conflict(op, err) // unique_violation
		case "23503":
			return &apperr.Error{Kind: apperr.KindInvalidInput, Op: op, Message: "referenced record does not exist", Cause: err} // foreign_key_violation
		case "23514":
			return &apperr.Error{Kind: apperr.KindInvalidInput, Op: op, Message: "value violates check constraint", Cause: err}
		}
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "duplicate key"),
		strings.Contains(msg, "unique constraint failed"),
		errors.Is(err, gorm.ErrDuplicatedKey):
		return conflict(op, err)
	case strings.Contains(msg, "foreign key constraint failed"), errors.Is(err, gorm.ErrForeignKeyViolated):
		return &apperr.Error{Kind: apperr.KindInvalidInput, Op: op, Message: "referenced record does not exist", Cause: err}
	default:
		return apperr.Persistence(op, err)
	}
}

func conflict(op string, cause error) error {
	return &apperr.Error{Kind: apperr.KindConflict, Op: op, Message: "record already exists", Cause: cause}
}
