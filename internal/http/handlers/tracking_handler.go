// README: Tracking handlers for start/stop/reset/tick and the state snapshot.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tollsim/internal/modules/tracking"
)

type TrackingHandler struct {
	tracking *tracking.Service
}

func NewTrackingHandler(svc *tracking.Service) *TrackingHandler {
	return &TrackingHandler{tracking: svc}
}

func (h *TrackingHandler) Start(c *gin.Context) {
	if err := h.tracking.Start(c.Request.Context()); err != nil {
		writeTrackingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"tracking": true})
}

func (h *TrackingHandler) Stop(c *gin.Context) {
	if err := h.tracking.Stop(c.Request.Context()); err != nil {
		writeTrackingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"tracking": false})
}

func (h *TrackingHandler) Reset(c *gin.Context) {
	if err := h.tracking.Reset(c.Request.Context()); err != nil {
		writeTrackingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, h.tracking.Snapshot(c.Request.Context()))
}

// Tick runs one step by hand; a no-op batch comes back while tracking is off.
func (h *TrackingHandler) Tick(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.tracking.Tick(c.Request.Context()))
}

func (h *TrackingHandler) State(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.tracking.Snapshot(c.Request.Context()))
}
