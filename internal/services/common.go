package services

import (
	"context"
	"time"

	"github.com/yungbote/edulearn-backend/internal/data/aggregates"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

func nowUTC() time.Time { return time.Now().UTC() }

// read binds ctx for a repository read outside any transaction.
func read(ctx context.Context) dbctx.Context { return dbctx.Background(ctx) }

// logOutcome reports a failed operation at a level matching its kind.
func logOutcome(log *logger.Logger, op string, err error, kv ...interface{}) {
	if err == nil || log == nil {
		return
	}
	kv = append(kv, "op", op, "error", err)
	switch apperr.KindOf(err) {
	case apperr.KindUnauthorized, apperr.KindConflict:
		log.Warn("operation rejected", kv...)
	case apperr.KindNotFound, apperr.KindInvalidInput:
		log.Debug("operation rejected", kv...)
	default:
		log.Error("operation failed", kv...)
	}
}

// writer runs service writes through the shared unit of work.
type writer struct {
	deps aggregates.BaseDeps
	log  *logger.Logger
}

func newWriter(deps aggregates.BaseDeps, log *logger.Logger) writer {
	return writer{deps: deps.WithDefaults(), log: log}
}

func (w writer) do(ctx context.Context, op string, fn func(dbc dbctx.Context) error, kv ...interface{}) error {
	err := aggregates.ExecuteWrite(ctx, w.deps, op, fn)
	if err != nil {
		logOutcome(w.log, op, err, kv...)
		return err
	}
	if w.log != nil {
		w.log.Debug("write committed", append(kv, "op", op)...)
	}
	return nil
}

// mapRead classifies a failed read and logs it.
func mapRead(log *logger.Logger, op string, err error, kv ...interface{}) error {
	if err == nil {
		return nil
	}
	err = aggregates.MapError(op, err)
	logOutcome(log, op, err, kv...)
	return err
}
