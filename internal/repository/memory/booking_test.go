package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashkumar442/scheduling-api/internal/model"
)

func TestBookingStoreEmptyAtStartup(t *testing.T) {
	store := NewBookingStore()

	intervals, err := store.ListForDate(context.Background(), "2026-09-07")
	require.NoError(t, err)
	assert.Empty(t, intervals)
}

func TestBookingStoreAddAndList(t *testing.T) {
	store := NewBookingStore()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "2026-09-07", model.Interval{Start: 600, End: 630}))
	require.NoError(t, store.Add(ctx, "2026-09-07", model.Interval{Start: 660, End: 690}))
	require.NoError(t, store.Add(ctx, "2026-09-08", model.Interval{Start: 600, End: 630}))

	monday, err := store.ListForDate(ctx, "2026-09-07")
	require.NoError(t, err)
	assert.Len(t, monday, 2)

	tuesday, err := store.ListForDate(ctx, "2026-09-08")
	require.NoError(t, err)
	assert.Len(t, tuesday, 1)
}

func TestBookingStoreReturnsCopy(t *testing.T) {
	store := NewBookingStore()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "2026-09-07", model.Interval{Start: 600, End: 630}))

	intervals, err := store.ListForDate(ctx, "2026-09-07")
	require.NoError(t, err)
	intervals[0] = model.Interval{Start: 0, End: 1}

	fresh, err := store.ListForDate(ctx, "2026-09-07")
	require.NoError(t, err)
	assert.Equal(t, model.Interval{Start: 600, End: 630}, fresh[0])
}

func TestBookingStoreConcurrentAdds(t *testing.T) {
	store := NewBookingStore()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			start := model.TimeOfDay(i * 30)
			_ = store.Add(ctx, "2026-09-07", model.Interval{Start: start, End: start + 30})
		}(i)
	}
	wg.Wait()

	intervals, err := store.ListForDate(ctx, "2026-09-07")
	require.NoError(t, err)
	assert.Len(t, intervals, n)
}
