package bus

import (
	"context"
	"testing"

	"github.com/yungbote/edulearn-backend/internal/realtime"
)

func TestLocalBusForwardsToEveryForwarder(t *testing.T) {
	b := NewLocalBus()
	ctx := context.Background()

	var a, c []realtime.SSEMessage
	if err := b.StartForwarder(ctx, func(m realtime.SSEMessage) { a = append(a, m) }); err != nil {
		t.Fatalf("StartForwarder: %v", err)
	}
	if err := b.StartForwarder(ctx, func(m realtime.SSEMessage) { c = append(c, m) }); err != nil {
		t.Fatalf("StartForwarder: %v", err)
	}

	msg := realtime.SSEMessage{Channel: realtime.CourseChannel(3), Event: realtime.SSEEventCommentCreated}
	if err := b.Publish(ctx, msg); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(a) != 1 || len(c) != 1 || a[0].Channel != "course:3" {
		t.Fatalf("unexpected deliveries a=%v c=%v", a, c)
	}

	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := b.Publish(ctx, msg); err == nil {
		t.Fatalf("expected publish after close to fail")
	}
	if err := b.StartForwarder(ctx, nil); err == nil {
		t.Fatalf("expected nil callback to be rejected")
	}
}

func TestPublishRejectsUnaddressedMessages(t *testing.T) {
	b := NewLocalBus()
	ctx := context.Background()
	delivered := 0
	if err := b.StartForwarder(ctx, func(realtime.SSEMessage) { delivered++ }); err != nil {
		t.Fatalf("StartForwarder: %v", err)
	}
	if err := b.Publish(ctx, realtime.SSEMessage{Event: realtime.SSEEventDoubtClosed}); err != errNoChannel {
		t.Fatalf("missing channel: got %v", err)
	}
	if err := b.Publish(ctx, realtime.SSEMessage{Channel: realtime.UserChannel(1)}); err != errNoEvent {
		t.Fatalf("missing event: got %v", err)
	}
	if delivered != 0 {
		t.Fatalf("unaddressed messages were delivered: %d", delivered)
	}
}
