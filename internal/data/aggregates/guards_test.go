package aggregates

import (
	"testing"

	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
)

func TestRequireStatusAllowed(t *testing.T) {
	if err := RequireStatusAllowed("OPEN", "OPEN", "ANSWERED"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	err := RequireStatusAllowed("CLOSED", "OPEN")
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if err := RequireStatusAllowed("OPEN"); !apperr.IsKind(err, apperr.KindInvalidInput) {
		t.Fatalf("expected invalid input for empty allowed set, got %v", err)
	}
}

func TestRequireCASSuccess(t *testing.T) {
	if err := RequireCASSuccess(true, "ok"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := RequireCASSuccess(false, "stale"); !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestUpdateByStatus_RequiresDB(t *testing.T) {
	g := NewCASGuard(nil)
	_, err := g.UpdateByStatus(dbctx.Context{}, "doubt", 1, []string{"OPEN"}, map[string]any{"status": "ANSWERED"})
	if !apperr.IsKind(err, apperr.KindInvalidInput) {
		t.Fatalf("expected invalid input without db, got %v", err)
	}
}
