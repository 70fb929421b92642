package handler

import (
	"time"

	"github.com/gin-gonic/gin"
)

// SystemHandler handles service metadata endpoints
type SystemHandler struct {
	BaseHandler
	version   string
	startedAt time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(version string) *SystemHandler {
	return &SystemHandler{
		version:   version,
		startedAt: time.Now(),
	}
}

// Ping returns a trivial liveness response
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, gin.H{"pong": true})
}

// Info returns service version and uptime
func (h *SystemHandler) Info(c *gin.Context) {
	h.Success(c, gin.H{
		"version":    h.version,
		"started_at": h.startedAt.UTC().Format(time.RFC3339),
		"uptime_s":   int64(time.Since(h.startedAt).Seconds()),
	})
}
