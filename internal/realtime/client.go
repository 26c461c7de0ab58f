package realtime

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

// SSEClient is one open event stream. Channels is guarded by the hub lock.
type SSEClient struct {
	ID       uuid.UUID
	UserID   int64
	Channels map[string]bool
	Outbound chan SSEMessage
	done     chan struct{}
	Logger   *logger.Logger
}

type ChannelKind string

const (
	ChannelKindUser       ChannelKind = "user"
	ChannelKindCourse     ChannelKind = "course"
	ChannelKindProfessors ChannelKind = "professors"
)

// ParseChannel reverses UserChannel, CourseChannel and ProfessorsChannel.
// Scoped channels need a positive id.
func ParseChannel(channel string) (ChannelKind, int64, bool) {
	channel = strings.TrimSpace(channel)
	if channel == ProfessorsChannel {
		return ChannelKindProfessors, 0, true
	}
	kind, rawID, ok := strings.Cut(channel, ":")
	if !ok {
		return "", 0, false
	}
	switch ChannelKind(kind) {
	case ChannelKindUser, ChannelKindCourse:
	default:
		return "", 0, false
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return "", 0, false
	}
	return ChannelKind(kind), id, true
}
