package bus

import (
	"context"
	"fmt"
	"sync"

	"github.com/yungbote/edulearn-backend/internal/realtime"
)

// localBus delivers messages inside one process. Used when no Redis address
// is configured.
type localBus struct {
	mu       sync.RWMutex
	handlers []func(realtime.SSEMessage)
	closed   bool
}

func NewLocalBus() Bus {
	return &localBus{}
}

func (b *localBus) Publish(ctx context.Context, msg realtime.SSEMessage) error {
	if err := validate(msg); err != nil {
		return err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return errClosed
	}
	for _, h := range b.handlers {
		h(msg)
	}
	return nil
}

func (b *localBus) StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error {
	if onMsg == nil {
		return fmt.Errorf("onMsg callback required")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return errClosed
	}
	b.handlers = append(b.handlers, onMsg)
	return nil
}

func (b *localBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.handlers = nil
	return nil
}
