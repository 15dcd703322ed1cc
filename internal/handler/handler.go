package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/akashkumar442/scheduling-api/internal/repository"
)

// Handler contains dependencies for the health and metrics endpoints
type Handler struct {
	scheduleRepo repository.ScheduleRepository
}

// NewHandler creates a new handler instance
func NewHandler(scheduleRepo repository.ScheduleRepository) *Handler {
	return &Handler{scheduleRepo: scheduleRepo}
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
		"time":   time.Now(),
	})
}

// ReadinessCheck probes the schedule source, the service's only dependency.
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if _, err := h.scheduleRepo.Load(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "schedule source unavailable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now(),
	})
}

func (h *Handler) MetricsHandler(c *gin.Context) {
	promhttp.Handler().ServeHTTP(c.Writer, c.Request)
}
