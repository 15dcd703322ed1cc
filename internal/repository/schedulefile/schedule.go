package schedulefile

import (
	"bytes"
	"context"
	"encoding/json"
	"os"

	gocache "github.com/patrickmn/go-cache"

	"github.com/akashkumar442/scheduling-api/internal/model"
	"github.com/akashkumar442/scheduling-api/pkg/errors"
)

const scheduleKey = "doctor_schedule"

// Repository reads the schedule document from a JSON file. The decoded
// schedule is held in an in-process cache with no expiry, so the file is
// read once and held for the process lifetime.
type Repository struct {
	path  string
	cache *gocache.Cache
}

func NewRepository(path string) *Repository {
	return &Repository{
		path:  path,
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

func (r *Repository) Load(ctx context.Context) (*model.Schedule, error) {
	if cached, ok := r.cache.Get(scheduleKey); ok {
		return cached.(*model.Schedule), nil
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, errors.NewUnavailable("schedule data not found", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var schedule model.Schedule
	if err := dec.Decode(&schedule); err != nil {
		return nil, errors.NewUnavailable("schedule data malformed", err)
	}
	if err := schedule.Validate(); err != nil {
		return nil, errors.NewUnavailable("schedule data malformed", err)
	}

	r.cache.Set(scheduleKey, &schedule, gocache.NoExpiration)
	return &schedule, nil
}
