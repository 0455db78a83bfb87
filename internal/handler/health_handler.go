package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	ready func(ctx context.Context) error
}

// NewHealthHandler creates a health handler. ready is probed by /ready and
// should verify the storage backend is reachable; nil means always ready.
func NewHealthHandler(ready func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{ready: ready}
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready handles GET /ready.
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.ready != nil {
		if err := h.ready(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
