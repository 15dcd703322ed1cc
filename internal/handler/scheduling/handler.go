package scheduling

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akashkumar442/scheduling-api/internal/model"
	"github.com/akashkumar442/scheduling-api/internal/service/scheduling"
	"github.com/akashkumar442/scheduling-api/pkg/errors"
	"github.com/akashkumar442/scheduling-api/pkg/httputil"
	"github.com/akashkumar442/scheduling-api/pkg/metrics"
)

type Handler struct {
	service *scheduling.Service
	metrics *metrics.Metrics
}

func NewHandler(service *scheduling.Service, m *metrics.Metrics) *Handler {
	return &Handler{service: service, metrics: m}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	calendly := r.Group("/calendly")
	{
		calendly.GET("/availability", h.GetAvailability)
		calendly.POST("/book", h.BookAppointment)
	}
}

func (h *Handler) GetAvailability(c *gin.Context) {
	var req model.AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation(err.Error(), err))
		return
	}

	slots, err := h.service.Slots(c.Request.Context(), req.Date, model.AppointmentType(req.AppointmentType))
	if err != nil {
		if h.metrics != nil && errors.IsCode(err, errors.ErrUnavailable) {
			h.metrics.ScheduleLoadError.Inc()
		}
		httputil.RespondWithError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.SlotQueries.WithLabelValues(req.AppointmentType).Inc()
		h.metrics.SlotsGenerated.Observe(float64(len(slots)))
	}

	httputil.RespondWithSuccess(c, model.AvailabilityResponse{
		Date:           req.Date,
		AvailableSlots: slots,
	})
}

func (h *Handler) BookAppointment(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation(err.Error(), err))
		return
	}

	start := time.Now()
	booking, err := h.service.Book(c.Request.Context(), &req)
	if err != nil {
		h.recordRejection(err)
		httputil.RespondWithError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.BookingsConfirmed.Inc()
		h.metrics.BookingLatency.Observe(time.Since(start).Seconds())
	}

	httputil.RespondWithCreated(c, booking)
}

func (h *Handler) recordRejection(err error) {
	if h.metrics == nil {
		return
	}
	switch {
	case errors.IsCode(err, errors.ErrConflict):
		h.metrics.BookingsRejected.WithLabelValues("conflict").Inc()
	case errors.IsCode(err, errors.ErrValidation):
		h.metrics.BookingsRejected.WithLabelValues("validation").Inc()
	default:
		h.metrics.BookingsRejected.WithLabelValues("internal").Inc()
	}
}
