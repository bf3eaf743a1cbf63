// README: Toll booth handlers for listing and adding booths.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tollsim/internal/modules/tracking"
)

type BoothHandler struct {
	tracking *tracking.Service
}

func NewBoothHandler(svc *tracking.Service) *BoothHandler {
	return &BoothHandler{tracking: svc}
}

type addBoothReq struct {
	Name string `json:"name"`
	Lat  any    `json:"lat"`
	Lng  any    `json:"lng"`
}

func (h *BoothHandler) List(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"booths": h.tracking.Booths(c.Request.Context())})
}

func (h *BoothHandler) Add(c *gin.Context) {
	var req addBoothReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	b, err := h.tracking.AddBooth(c.Request.Context(), req.Name, coordText(req.Lat), coordText(req.Lng))
	if err != nil {
		writeTrackingError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, b)
}
