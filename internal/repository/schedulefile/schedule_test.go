package schedulefile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashkumar442/scheduling-api/pkg/errors"
)

const validDocument = `{
  "working_hours": {
    "monday": {"start": "09:00", "end": "17:00"},
    "sunday": null
  },
  "existing_bookings": [
    {"date": "2026-09-07", "start_time": "09:30", "end_time": "10:00"}
  ]
}`

func writeSchedule(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doctor_schedule.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValidDocument(t *testing.T) {
	repo := NewRepository(writeSchedule(t, validDocument))

	schedule, err := repo.Load(context.Background())
	require.NoError(t, err)

	monday := schedule.WorkingHours["monday"]
	require.NotNil(t, monday)
	assert.Equal(t, "09:00", monday.Start.String())
	assert.Equal(t, "17:00", monday.End.String())

	sunday, present := schedule.WorkingHours["sunday"]
	assert.True(t, present)
	assert.Nil(t, sunday)

	require.Len(t, schedule.ExistingBookings, 1)
	assert.Equal(t, "2026-09-07", schedule.ExistingBookings[0].Date)
}

func TestLoadMissingFile(t *testing.T) {
	repo := NewRepository(filepath.Join(t.TempDir(), "nope.json"))

	_, err := repo.Load(context.Background())
	assert.True(t, errors.IsCode(err, errors.ErrUnavailable))
}

func TestLoadRejectsMalformedDocuments(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "not json at all"},
		{"missing working_hours", `{"existing_bookings": []}`},
		{"unknown field", `{"working_hours": {}, "existing_bookings": [], "extra": 1}`},
		{"unknown weekday", `{"working_hours": {"someday": {"start": "09:00", "end": "17:00"}}, "existing_bookings": []}`},
		{"inverted hours", `{"working_hours": {"monday": {"start": "17:00", "end": "09:00"}}, "existing_bookings": []}`},
		{"bad time format", `{"working_hours": {"monday": {"start": "9am", "end": "17:00"}}, "existing_bookings": []}`},
		{"bad booking date", `{"working_hours": {}, "existing_bookings": [{"date": "07-09-2026", "start_time": "09:00", "end_time": "10:00"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewRepository(writeSchedule(t, tt.content))
			_, err := repo.Load(context.Background())
			assert.True(t, errors.IsCode(err, errors.ErrUnavailable), "got %v", err)
		})
	}
}

func TestLoadCachesDocument(t *testing.T) {
	path := writeSchedule(t, validDocument)
	repo := NewRepository(path)

	first, err := repo.Load(context.Background())
	require.NoError(t, err)

	// the source is read once and held; later file changes are not observed
	require.NoError(t, os.Remove(path))
	second, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
}
