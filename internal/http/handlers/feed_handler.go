// README: Websocket feed handler streaming tick batches.
package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"tollsim/internal/realtime"
)

type FeedHandler struct {
	hub *realtime.Hub
}

func NewFeedHandler(hub *realtime.Hub) *FeedHandler {
	return &FeedHandler{hub: hub}
}

func (h *FeedHandler) Serve(c *gin.Context) {
	// Upgrade writes its own error response.
	if err := h.hub.Serve(c.Writer, c.Request); err != nil {
		slog.Warn("feed upgrade failed", "err", err)
	}
}
