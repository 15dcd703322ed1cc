package scheduling

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/akashkumar442/scheduling-api/internal/model"
	"github.com/akashkumar442/scheduling-api/internal/repository"
	"github.com/akashkumar442/scheduling-api/pkg/errors"
)

// Service generates candidate slots and orchestrates bookings against the
// runtime booking table.
type Service struct {
	scheduleRepo repository.ScheduleRepository
	bookingRepo  repository.BookingRepository

	// mu serializes the recompute-then-commit sequence in Book so two
	// concurrent requests cannot both pass the availability check.
	mu sync.Mutex
}

func NewService(scheduleRepo repository.ScheduleRepository, bookingRepo repository.BookingRepository) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
	}
}

// Slots returns the ordered candidate slots for a date and appointment type.
// A closed weekday yields an empty sequence, not an error. The result is a
// pure function of the schedule source and the current booking table.
func (s *Service) Slots(ctx context.Context, date string, appointmentType model.AppointmentType) ([]model.Slot, error) {
	if !appointmentType.Valid() {
		return nil, errors.NewValidation("invalid appointment_type", nil)
	}
	day, err := model.ParseDate(date)
	if err != nil {
		return nil, errors.NewValidation(err.Error(), err)
	}

	schedule, err := s.scheduleRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	slots := []model.Slot{}
	hours := schedule.HoursFor(day)
	if hours == nil {
		return slots, nil
	}

	booked, err := s.bookedIntervals(ctx, schedule, date)
	if err != nil {
		return nil, err
	}

	duration := appointmentType.Duration()
	for start := hours.Start; start.Add(duration) <= hours.End; start = start.Add(duration) {
		end := start.Add(duration)
		slots = append(slots, model.Slot{
			StartTime: start,
			EndTime:   end,
			Available: !hasConflict(start, end, booked),
		})
	}
	return slots, nil
}

// Book re-validates availability against the latest booking table state and
// commits the reservation. The whole sequence runs under a single lock, so a
// confirmed booking can never overlap another for the same date.
func (s *Service) Book(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error) {
	appointmentType := model.AppointmentType(req.AppointmentType)
	if !appointmentType.Valid() {
		return nil, errors.NewValidation("invalid appointment_type", nil)
	}
	if _, err := model.ParseDate(req.Date); err != nil {
		return nil, errors.NewValidation(err.Error(), err)
	}
	start, err := model.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, errors.NewValidation(err.Error(), err)
	}
	end := start.Add(appointmentType.Duration())

	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.Slots(ctx, req.Date, appointmentType)
	if err != nil {
		return nil, err
	}

	slot := findSlot(slots, start, end)
	if slot == nil {
		return nil, errors.NewValidation("requested time is outside working hours", nil)
	}
	if !slot.Available {
		return nil, errors.NewConflict("requested time is no longer available", nil)
	}

	if err := s.bookingRepo.Add(ctx, req.Date, model.Interval{Start: start, End: end}); err != nil {
		return nil, errors.NewInternal(err)
	}

	booking := &model.Booking{
		BookingID:        newBookingID(time.Now()),
		Status:           model.BookingStatusConfirmed,
		ConfirmationCode: newConfirmationCode(),
		Details: model.BookingDetails{
			AppointmentType: appointmentType,
			Date:            req.Date,
			StartTime:       start,
			EndTime:         end,
			Patient:         req.Patient,
			Reason:          req.Reason,
		},
	}

	log.Info().
		Str("booking_id", booking.BookingID).
		Str("date", req.Date).
		Str("start", start.String()).
		Str("appointment_type", string(appointmentType)).
		Msg("booking confirmed")

	return booking, nil
}

// bookedIntervals merges the static bookings for a date with the runtime
// booking table entries for the same date.
func (s *Service) bookedIntervals(ctx context.Context, schedule *model.Schedule, date string) ([]model.Interval, error) {
	var booked []model.Interval
	for _, b := range schedule.ExistingBookings {
		if b.Date == date {
			booked = append(booked, model.Interval{Start: b.StartTime, End: b.EndTime})
		}
	}

	runtime, err := s.bookingRepo.ListForDate(ctx, date)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return append(booked, runtime...), nil
}

// overlaps is the sole conflict rule: intervals that merely touch at an
// endpoint do not overlap.
func overlaps(aStart, aEnd, bStart, bEnd model.TimeOfDay) bool {
	return aStart < bEnd && bStart < aEnd
}

func hasConflict(start, end model.TimeOfDay, booked []model.Interval) bool {
	for _, b := range booked {
		if overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}

func findSlot(slots []model.Slot, start, end model.TimeOfDay) *model.Slot {
	for i := range slots {
		if slots[i].StartTime == start && slots[i].EndTime == end {
			return &slots[i]
		}
	}
	return nil
}

func newBookingID(now time.Time) string {
	return fmt.Sprintf("APPT-%s-%s", now.Format("20060102"), strings.ToUpper(uuid.New().String()[:8]))
}

func newConfirmationCode() string {
	return strings.ToUpper(uuid.New().String()[:6])
}
