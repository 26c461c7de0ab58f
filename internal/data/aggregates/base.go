package aggregates

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
)

const tracerName = "github.com/yungbote/edulearn-backend/internal/data/aggregates"

type BaseDeps struct {
	DB       *gorm.DB
	Runner   TxRunner
	Hooks    Hooks
	CASGuard CASGuard
}

func (d BaseDeps) WithDefaults() BaseDeps {
	if d.Runner == nil {
		d.Runner = NewGormTxRunner(d.DB)
	}
	if d.Hooks == nil {
		d.Hooks = noopHooks{}
	}
	if d.CASGuard.db == nil {
		d.CASGuard = NewCASGuard(d.DB)
	}
	return d
}

// ExecuteWrite runs fn in one transaction, classifies its error and reports
// the outcome to deps.Hooks.
func ExecuteWrite(ctx context.Context, deps BaseDeps, op string, fn func(dbc dbctx.Context) error) error {
	start := time.Now()
	deps = deps.WithDefaults()
	op = strings.TrimSpace(op)
	if op == "" {
		op = "write"
	}
	ctx, span := otel.Tracer(tracerName).Start(ctx, op)
	defer span.End()

	mapped := MapError(op, deps.Runner.InTx(ctx, fn))

	status := "success"
	if mapped != nil {
		status = string(apperr.KindOf(mapped))
		if apperr.IsKind(mapped, apperr.KindConflict) {
			deps.Hooks.IncConflict(op)
		}
		if apperr.IsKind(mapped, apperr.KindPersistence) {
			span.RecordError(mapped)
			span.SetStatus(codes.Error, status)
		}
	}
	span.SetAttributes(attribute.String("write.status", status))
	deps.Hooks.ObserveOperation(op, status, time.Since(start))
	return mapped
}
