package testutil

import (
	"context"
	"sync"

	"github.com/yungbote/edulearn-backend/internal/data/aggregates"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
)

// InjectedTxRunner runs service write bodies without a database and lets a
// test fail the begin or commit step.
type InjectedTxRunner struct {
	mu sync.Mutex

	FailBegin  error
	FailCommit error

	BeginCalls    int
	CommitCalls   int
	RollbackCalls int
}

var _ aggregates.TxRunner = (*InjectedTxRunner)(nil)

func (r *InjectedTxRunner) count(field *int) {
	r.mu.Lock()
	*field++
	r.mu.Unlock()
}

func (r *InjectedTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.count(&r.BeginCalls)
	if r.FailBegin != nil {
		return r.FailBegin
	}
	if fn != nil {
		if err := fn(dbctx.Context{Ctx: ctx}); err != nil {
			r.count(&r.RollbackCalls)
			return err
		}
	}
	if r.FailCommit != nil {
		r.count(&r.RollbackCalls)
		return r.FailCommit
	}
	r.count(&r.CommitCalls)
	return nil
}
