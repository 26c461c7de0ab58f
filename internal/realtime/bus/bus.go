package bus

import (
	"context"

	"github.com/yungbote/edulearn-backend/internal/realtime"
)

// Publisher is the write side services need; they never subscribe.
type Publisher interface {
	Publish(ctx context.Context, msg realtime.SSEMessage) error
}

// Bus fans realtime messages out to every API instance. Each instance runs
// one forwarder that hands messages to its local hub.
type Bus interface {
	Publisher
	StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error
	Close() error
}

func validate(msg realtime.SSEMessage) error {
	if msg.Channel == "" {
		return errNoChannel
	}
	if msg.Event == "" {
		return errNoEvent
	}
	return nil
}
