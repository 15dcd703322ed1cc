package model

import (
	"fmt"
	"strings"
	"time"
)

// AppointmentType identifies one of the fixed appointment categories.
type AppointmentType string

const (
	AppointmentTypeConsultation AppointmentType = "consultation"
	AppointmentTypeFollowup     AppointmentType = "followup"
	AppointmentTypePhysical     AppointmentType = "physical"
	AppointmentTypeSpecial      AppointmentType = "special"
)

var appointmentDurations = map[AppointmentType]time.Duration{
	AppointmentTypeConsultation: 30 * time.Minute,
	AppointmentTypeFollowup:     15 * time.Minute,
	AppointmentTypePhysical:     45 * time.Minute,
	AppointmentTypeSpecial:      60 * time.Minute,
}

// Valid reports whether t is a member of the closed appointment type set.
func (t AppointmentType) Valid() bool {
	_, ok := appointmentDurations[t]
	return ok
}

// Duration returns the fixed slot length for the appointment type.
func (t AppointmentType) Duration() time.Duration {
	return appointmentDurations[t]
}

// AppointmentTypes lists all valid appointment types.
func AppointmentTypes() []AppointmentType {
	return []AppointmentType{
		AppointmentTypeConsultation,
		AppointmentTypeFollowup,
		AppointmentTypePhysical,
		AppointmentTypeSpecial,
	}
}

// TimeOfDay is a clock time within a day, held as minutes from midnight.
// It marshals to and from the wire format "HH:MM".
type TimeOfDay int

// ParseTimeOfDay parses an "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Add returns the time of day d later than t.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return t + TimeOfDay(d/time.Minute)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// DayHours is the open interval of a working day.
type DayHours struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// ScheduleBooking is a static pre-existing booking from the schedule source.
type ScheduleBooking struct {
	Date      string    `json:"date"`
	StartTime TimeOfDay `json:"start_time"`
	EndTime   TimeOfDay `json:"end_time"`
}

// Schedule is the doctor's static configuration: working hours per weekday
// (nil means the day is closed) and the pre-existing bookings. Immutable
// after load.
type Schedule struct {
	WorkingHours     map[string]*DayHours `json:"working_hours"`
	ExistingBookings []ScheduleBooking    `json:"existing_bookings"`
}

var weekdayNames = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// Validate rejects malformed schedule documents at load time.
func (s *Schedule) Validate() error {
	if s.WorkingHours == nil {
		return fmt.Errorf("missing working_hours")
	}
	for day, hours := range s.WorkingHours {
		if !weekdayNames[day] {
			return fmt.Errorf("unknown weekday %q in working_hours", day)
		}
		if hours == nil {
			continue
		}
		if hours.Start >= hours.End {
			return fmt.Errorf("working hours for %s: start %s must precede end %s", day, hours.Start, hours.End)
		}
	}
	for i, b := range s.ExistingBookings {
		if _, err := ParseDate(b.Date); err != nil {
			return fmt.Errorf("existing booking %d: %w", i, err)
		}
		if b.StartTime >= b.EndTime {
			return fmt.Errorf("existing booking %d: start %s must precede end %s", i, b.StartTime, b.EndTime)
		}
	}
	return nil
}

// HoursFor returns the working hours for the weekday of the given date, or
// nil when the day is closed.
func (s *Schedule) HoursFor(date time.Time) *DayHours {
	return s.WorkingHours[strings.ToLower(date.Weekday().String())]
}

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// Interval is a booked (start, end) pair within a single date.
type Interval struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// Slot is a candidate appointment interval, recomputed on every request and
// never stored.
type Slot struct {
	StartTime TimeOfDay `json:"start_time"`
	EndTime   TimeOfDay `json:"end_time"`
	Available bool      `json:"available"`
}
