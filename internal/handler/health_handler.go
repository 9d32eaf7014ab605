package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"umlage/internal/port"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	checker port.HealthChecker
}

// NewHealthHandler creates a new HealthHandler. A nil checker makes the
// service ready as soon as it is live.
func NewHealthHandler(checker port.HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.checker != nil {
		if err := h.checker.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "building directory not reachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
