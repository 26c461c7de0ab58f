package handlers

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/http/response"
	"github.com/yungbote/edulearn-backend/internal/observability"
	"github.com/yungbote/edulearn-backend/internal/pkg/ctxutil"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
	"github.com/yungbote/edulearn-backend/internal/realtime"
)

var (
	errInvalidChannel  = errors.New("invalid channel")
	errChannelDenied   = errors.New("channel not available to this user")
	errNoActiveStreams = errors.New("no active SSE connection for this user")
)

type RealtimeHandler struct {
	log     *logger.Logger
	hub     *realtime.SSEHub
	metrics *observability.Metrics

	mu      sync.RWMutex
	clients map[int64]map[*realtime.SSEClient]bool // key: user id
}

func NewRealtimeHandler(log *logger.Logger, hub *realtime.SSEHub, metrics *observability.Metrics) *RealtimeHandler {
	return &RealtimeHandler{
		log:     log.With("handler", "RealtimeHandler"),
		hub:     hub,
		metrics: metrics,
		clients: make(map[int64]map[*realtime.SSEClient]bool),
	}
}

// GET /api/sse/stream
func (h *RealtimeHandler) SSEStream(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID <= 0 {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errNotAuthenticated)
		return
	}
	client := h.hub.NewSSEClient(rd.UserID)

	h.mu.Lock()
	set, ok := h.clients[rd.UserID]
	if !ok {
		set = make(map[*realtime.SSEClient]bool)
		h.clients[rd.UserID] = set
	}
	set[client] = true
	h.mu.Unlock()

	h.hub.AddChannel(client, realtime.UserChannel(rd.UserID))
	if rd.UserType == string(types.UserTypeProfessor) {
		h.hub.AddChannel(client, realtime.ProfessorsChannel)
	}
	h.metrics.SSEClientConnected()
	h.log.Info("SSEStream open", "user_id", rd.UserID, "client_id", client.ID.String())

	h.hub.ServeHTTP(c.Writer, c.Request, client)

	h.mu.Lock()
	delete(set, client)
	if len(set) == 0 {
		delete(h.clients, rd.UserID)
	}
	h.mu.Unlock()
	h.hub.CloseClient(client)
	h.metrics.SSEClientDisconnected()
	h.log.Debug("SSEStream closed", "user_id", rd.UserID, "client_id", client.ID.String())
}

// POST /api/sse/subscribe
// body: { "channel": "course:12" }
func (h *RealtimeHandler) SSESubscribe(c *gin.Context) {
	h.changeSubscription(c, h.hub.AddChannel)
}

// POST /api/sse/unsubscribe
func (h *RealtimeHandler) SSEUnsubscribe(c *gin.Context) {
	h.changeSubscription(c, h.hub.RemoveChannel)
}

func (h *RealtimeHandler) changeSubscription(c *gin.Context, apply func(*realtime.SSEClient, string)) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID <= 0 {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errNotAuthenticated)
		return
	}
	var req struct {
		Channel string `json:"channel"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Channel) == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errInvalidChannel)
		return
	}
	channel := strings.TrimSpace(req.Channel)
	if err := channelAllowed(rd, channel); err != nil {
		response.RespondError(c, http.StatusForbidden, "forbidden", err)
		return
	}

	// Held while applying so a stream cannot close its client underneath us.
	h.mu.RLock()
	defer h.mu.RUnlock()
	clients := h.clients[rd.UserID]
	if len(clients) == 0 {
		response.RespondError(c, http.StatusConflict, "conflict", errNoActiveStreams)
		return
	}
	for cl := range clients {
		apply(cl, channel)
	}
	response.RespondOK(c, gin.H{"channel": channel, "streams": len(clients)})
}

// channelAllowed limits clients to course channels, their own user channel and,
// for professors, the professors channel.
func channelAllowed(rd *ctxutil.RequestData, channel string) error {
	kind, id, ok := realtime.ParseChannel(channel)
	if !ok {
		return errInvalidChannel
	}
	switch kind {
	case realtime.ChannelKindCourse:
		return nil
	case realtime.ChannelKindUser:
		if id == rd.UserID {
			return nil
		}
	case realtime.ChannelKindProfessors:
		if rd.UserType == string(types.UserTypeProfessor) {
			return nil
		}
	}
	return errChannelDenied
}
