package memory

import (
	"context"
	"sync"

	"github.com/akashkumar442/scheduling-api/internal/model"
)

// BookingStore holds runtime bookings in memory, keyed by date. Empty at
// startup, grows on confirmed bookings only, never persisted. Safe for
// concurrent use.
type BookingStore struct {
	mu     sync.RWMutex
	byDate map[string][]model.Interval
}

func NewBookingStore() *BookingStore {
	return &BookingStore{
		byDate: make(map[string][]model.Interval),
	}
}

func (s *BookingStore) ListForDate(ctx context.Context, date string) ([]model.Interval, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	intervals := s.byDate[date]
	out := make([]model.Interval, len(intervals))
	copy(out, intervals)
	return out, nil
}

func (s *BookingStore) Add(ctx context.Context, date string, interval model.Interval) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byDate[date] = append(s.byDate[date], interval)
	return nil
}
