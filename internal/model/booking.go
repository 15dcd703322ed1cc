package model

// BookingStatus tags the outcome of a booking attempt.
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusFailed    BookingStatus = "failed"
)

// Patient identifies who an appointment is for.
type Patient struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
}

// AvailabilityRequest is the read-side query.
type AvailabilityRequest struct {
	Date            string `form:"date" binding:"required,dateymd"`
	AppointmentType string `form:"appointment_type" binding:"required,appointmenttype"`
}

// AvailabilityResponse echoes the date with the generated slot sequence.
type AvailabilityResponse struct {
	Date           string `json:"date"`
	AvailableSlots []Slot `json:"available_slots"`
}

// CreateBookingRequest is the write-side payload.
type CreateBookingRequest struct {
	AppointmentType string  `json:"appointment_type" binding:"required,appointmenttype"`
	Date            string  `json:"date" binding:"required,dateymd"`
	StartTime       string  `json:"start_time" binding:"required,timehhmm"`
	Patient         Patient `json:"patient" binding:"required"`
	Reason          string  `json:"reason,omitempty"`
}

// BookingDetails is the snapshot echoed back on a confirmed booking.
type BookingDetails struct {
	AppointmentType AppointmentType `json:"appointment_type"`
	Date            string          `json:"date"`
	StartTime       TimeOfDay       `json:"start_time"`
	EndTime         TimeOfDay       `json:"end_time"`
	Patient         Patient         `json:"patient"`
	Reason          string          `json:"reason,omitempty"`
}

// Booking is returned to the caller once per successful booking. It is never
// mutated or deleted afterwards.
type Booking struct {
	BookingID        string         `json:"booking_id"`
	Status           BookingStatus  `json:"status"`
	ConfirmationCode string         `json:"confirmation_code"`
	Details          BookingDetails `json:"details"`
}
