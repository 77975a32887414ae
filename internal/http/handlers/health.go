package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/staffing-graph-backend/internal/graph"
)

type HealthHandler struct {
	store graph.Store
}

func NewHealthHandler(store graph.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if h.store != nil {
		if _, _, err := h.store.Counts(c.Request.Context()); err != nil {
			c.String(http.StatusServiceUnavailable, "store unavailable")
			return
		}
	}
	c.String(http.StatusOK, "ok")
}
