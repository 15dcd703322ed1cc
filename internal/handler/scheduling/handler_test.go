package scheduling_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashkumar442/scheduling-api/internal/model"
	"github.com/akashkumar442/scheduling-api/internal/repository/memory"
	"github.com/akashkumar442/scheduling-api/pkg/errors"
	"github.com/akashkumar442/scheduling-api/pkg/validator"

	handler "github.com/akashkumar442/scheduling-api/internal/handler/scheduling"
	service "github.com/akashkumar442/scheduling-api/internal/service/scheduling"
)

// 2026-09-07 is a Monday, 2026-09-13 is a Sunday.
const (
	openDate   = "2026-09-07"
	closedDate = "2026-09-13"
)

var (
	registerOnce sync.Once
	registerErr  error
)

type stubScheduleRepo struct {
	schedule *model.Schedule
	err      error
}

func (s *stubScheduleRepo) Load(ctx context.Context) (*model.Schedule, error) {
	return s.schedule, s.err
}

func testSchedule() *model.Schedule {
	return &model.Schedule{
		WorkingHours: map[string]*model.DayHours{
			"monday": {Start: 540, End: 1020},
			"sunday": nil,
		},
		ExistingBookings: []model.ScheduleBooking{
			{Date: openDate, StartTime: 570, EndTime: 600},
		},
	}
}

func newTestRouter(t *testing.T, repo *stubScheduleRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	registerOnce.Do(func() {
		registerErr = validator.RegisterCustom()
	})
	require.NoError(t, registerErr)

	svc := service.NewService(repo, memory.NewBookingStore())
	h := handler.NewHandler(svc, nil)

	engine := gin.New()
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func doGet(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	engine.ServeHTTP(w, req)
	return w
}

func doPost(t *testing.T, engine *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func bookingPayload(startTime string) map[string]interface{} {
	return map[string]interface{}{
		"appointment_type": "consultation",
		"date":             openDate,
		"start_time":       startTime,
		"patient": map[string]string{
			"name":  "Jane Roe",
			"email": "jane@example.com",
			"phone": "+15550101",
		},
		"reason": "annual check",
	}
}

func TestGetAvailability(t *testing.T) {
	engine := newTestRouter(t, &stubScheduleRepo{schedule: testSchedule()})

	w := doGet(engine, "/api/v1/calendly/availability?date="+openDate+"&appointment_type=consultation")
	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	assert.Equal(t, "success", envelope["status"])

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, openDate, data["date"])

	slots := data["available_slots"].([]interface{})
	require.Len(t, slots, 16)

	first := slots[0].(map[string]interface{})
	assert.Equal(t, "09:00", first["start_time"])
	assert.Equal(t, "09:30", first["end_time"])
	assert.Equal(t, true, first["available"])

	// the pre-existing 09:30-10:00 booking blocks its slot
	second := slots[1].(map[string]interface{})
	assert.Equal(t, "09:30", second["start_time"])
	assert.Equal(t, false, second["available"])

	last := slots[15].(map[string]interface{})
	assert.Equal(t, "16:30", last["start_time"])
	assert.Equal(t, "17:00", last["end_time"])
}

func TestGetAvailabilityClosedDay(t *testing.T) {
	engine := newTestRouter(t, &stubScheduleRepo{schedule: testSchedule()})

	w := doGet(engine, "/api/v1/calendly/availability?date="+closedDate+"&appointment_type=consultation")
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	slots := data["available_slots"].([]interface{})
	assert.Empty(t, slots)
}

func TestGetAvailabilityValidation(t *testing.T) {
	engine := newTestRouter(t, &stubScheduleRepo{schedule: testSchedule()})

	tests := []struct {
		name  string
		query string
	}{
		{"unknown appointment type", "date=" + openDate + "&appointment_type=walkin"},
		{"malformed date", "date=07-09-2026&appointment_type=consultation"},
		{"missing date", "appointment_type=consultation"},
		{"missing type", "date=" + openDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(engine, "/api/v1/calendly/availability?"+tt.query)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "error", decodeEnvelope(t, w)["status"])
		})
	}
}

func TestGetAvailabilityScheduleUnavailable(t *testing.T) {
	engine := newTestRouter(t, &stubScheduleRepo{
		err: errors.NewUnavailable("schedule data not found", nil),
	})

	w := doGet(engine, "/api/v1/calendly/availability?date="+openDate+"&appointment_type=consultation")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestBookAppointmentFlow(t *testing.T) {
	engine := newTestRouter(t, &stubScheduleRepo{schedule: testSchedule()})

	w := doPost(t, engine, "/api/v1/calendly/book", bookingPayload("10:00"))
	require.Equal(t, http.StatusCreated, w.Code)

	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "confirmed", data["status"])
	assert.NotEmpty(t, data["booking_id"])
	assert.NotEmpty(t, data["confirmation_code"])

	details := data["details"].(map[string]interface{})
	assert.Equal(t, "10:30", details["end_time"])
	assert.Equal(t, openDate, details["date"])

	patient := details["patient"].(map[string]interface{})
	assert.Equal(t, "Jane Roe", patient["name"])

	// the slot is now taken
	w = doPost(t, engine, "/api/v1/calendly/book", bookingPayload("10:00"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "error", decodeEnvelope(t, w)["status"])
}

func TestBookAppointmentValidation(t *testing.T) {
	engine := newTestRouter(t, &stubScheduleRepo{schedule: testSchedule()})

	unknownType := bookingPayload("10:00")
	unknownType["appointment_type"] = "walkin"

	badEmail := bookingPayload("10:00")
	badEmail["patient"] = map[string]string{"name": "J", "email": "not-an-email", "phone": "1"}

	missingPatient := map[string]interface{}{
		"appointment_type": "consultation",
		"date":             openDate,
		"start_time":       "10:00",
	}

	tests := []struct {
		name string
		body interface{}
	}{
		{"unaligned start time", bookingPayload("10:05")},
		{"start before opening", bookingPayload("08:00")},
		{"unknown appointment type", unknownType},
		{"invalid email", badEmail},
		{"missing patient", missingPatient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doPost(t, engine, "/api/v1/calendly/book", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestBookAppointmentClosedDay(t *testing.T) {
	engine := newTestRouter(t, &stubScheduleRepo{schedule: testSchedule()})

	payload := bookingPayload("10:00")
	payload["date"] = closedDate

	w := doPost(t, engine, "/api/v1/calendly/book", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
