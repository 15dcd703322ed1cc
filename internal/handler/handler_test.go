package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/akashkumar442/scheduling-api/internal/model"
	"github.com/akashkumar442/scheduling-api/pkg/errors"
)

type stubScheduleRepo struct {
	schedule *model.Schedule
	err      error
}

func (s *stubScheduleRepo) Load(ctx context.Context) (*model.Schedule, error) {
	return s.schedule, s.err
}

func serve(h *Handler, register func(*gin.Engine, *Handler), path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	register(engine, h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	engine.ServeHTTP(w, req)
	return w
}

func TestLivenessCheck(t *testing.T) {
	h := NewHandler(&stubScheduleRepo{})
	w := serve(h, func(e *gin.Engine, h *Handler) {
		e.GET("/health/live", h.LivenessCheck)
	}, "/health/live")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReadinessCheck(t *testing.T) {
	ready := NewHandler(&stubScheduleRepo{schedule: &model.Schedule{WorkingHours: map[string]*model.DayHours{}}})
	w := serve(ready, func(e *gin.Engine, h *Handler) {
		e.GET("/health/ready", h.ReadinessCheck)
	}, "/health/ready")
	assert.Equal(t, http.StatusOK, w.Code)

	notReady := NewHandler(&stubScheduleRepo{err: errors.NewUnavailable("schedule data not found", nil)})
	w = serve(notReady, func(e *gin.Engine, h *Handler) {
		e.GET("/health/ready", h.ReadinessCheck)
	}, "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
