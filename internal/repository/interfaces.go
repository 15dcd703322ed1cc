package repository

import (
	"context"

	"github.com/akashkumar442/scheduling-api/internal/model"
)

// All repository interfaces in one file
type (
	// ScheduleRepository loads the doctor's static schedule configuration.
	ScheduleRepository interface {
		Load(ctx context.Context) (*model.Schedule, error)
	}

	// BookingRepository is the runtime booking table: bookings confirmed
	// during this process's lifetime, keyed by date. There is no deletion.
	BookingRepository interface {
		ListForDate(ctx context.Context, date string) ([]model.Interval, error)
		Add(ctx context.Context, date string, interval model.Interval) error
	}
)
