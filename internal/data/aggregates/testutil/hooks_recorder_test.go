package testutil

import (
	"testing"
	"time"
)

func TestHooksRecorder_CapturesSignals(t *testing.T) {
	h := &HooksRecorder{}
	h.ObserveOperation("Doubt.Answer", "success", 10*time.Millisecond)
	h.IncConflict("Doubt.Answer")

	if len(h.Operations) != 1 {
		t.Fatalf("expected 1 op event, got %d", len(h.Operations))
	}
	if h.Operations[0].Name != "Doubt.Answer" || h.Operations[0].Status != "success" {
		t.Fatalf("unexpected op event: %+v", h.Operations[0])
	}
	if len(h.Conflicts) != 1 || h.Conflicts[0] != "Doubt.Answer" {
		t.Fatalf("unexpected conflicts: %+v", h.Conflicts)
	}
}
