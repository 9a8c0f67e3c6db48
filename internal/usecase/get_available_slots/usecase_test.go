package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	"github.com/m04kA/TheraConnect-BookingService/internal/testutil/memstore"
	"github.com/m04kA/TheraConnect-BookingService/pkg/logger"
	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

var now = time.Date(2024, 11, 6, 12, 0, 0, 0, time.UTC)

func day(d int) time.Time {
	return time.Date(2024, 11, d, 0, 0, 0, 0, time.UTC)
}

func setup(t *testing.T) (*memstore.Store, *memstore.Cache, *UseCase) {
	t.Helper()

	store := memstore.New()
	store.AddTherapist(domain.Therapist{ID: 1, UserID: 501, ActivatedTimes: []types.TimeString{"09:00", "10:00", "14:00"}})
	cache := memstore.NewCache()

	uc := NewUseCase(store.Therapists(), store.Bookings(), store.Leaves(), cache, time.UTC, logger.NewNop()).
		WithTimeProvider(memstore.FixedClock{T: now})
	return store, cache, uc
}

func availability(slots []Slot) map[types.TimeString]bool {
	out := make(map[types.TimeString]bool, len(slots))
	for _, s := range slots {
		out[s.StartTime] = s.Available
	}
	return out
}

func TestExecute_MarksBookedSlots(t *testing.T) {
	store, cache, uc := setup(t)
	store.AddBooking(domain.Booking{ParentID: 100, ChildID: 10, TherapistID: 1, SlotDate: day(7), StartTime: "10:00"})
	store.AddBooking(domain.Booking{ParentID: 100, ChildID: 10, TherapistID: 1, SlotDate: day(7), StartTime: "14:00", Status: domain.StatusCancelled})

	resp, err := uc.Execute(context.Background(), &Request{TherapistID: 1, Date: day(7)})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 3)
	assert.Equal(t, map[types.TimeString]bool{"09:00": true, "10:00": false, "14:00": true}, availability(resp.Slots))
	assert.Equal(t, domain.SlotDurationMinutes, resp.Slots[0].DurationMinutes)

	// результат закэширован
	times, hit, err := cache.GetBookedTimes(context.Background(), 1, day(7))
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []types.TimeString{"10:00"}, times)
}

func TestExecute_ReadsFromCache(t *testing.T) {
	_, cache, uc := setup(t)
	require.NoError(t, cache.SetBookedTimes(context.Background(), 1, day(7), []types.TimeString{"09:00"}))

	resp, err := uc.Execute(context.Background(), &Request{TherapistID: 1, Date: day(7)})
	require.NoError(t, err)

	assert.False(t, availability(resp.Slots)["09:00"])
}

func TestExecute_TodayHidesStartedSlots(t *testing.T) {
	_, _, uc := setup(t)

	resp, err := uc.Execute(context.Background(), &Request{TherapistID: 1, Date: day(6)})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, types.TimeString("14:00"), resp.Slots[0].StartTime)
}

func TestExecute_NoSlots(t *testing.T) {
	tests := []struct {
		name  string
		setup func(store *memstore.Store)
		date  time.Time
	}{
		{name: "saturday", date: day(9)},
		{name: "sunday", date: day(10)},
		{
			name: "approved leave",
			setup: func(store *memstore.Store) {
				store.AddLeave(domain.Leave{TherapistID: 1, LeaveDate: day(7), Status: domain.LeaveApproved})
			},
			date: day(7),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _, uc := setup(t)
			if tt.setup != nil {
				tt.setup(store)
			}

			resp, err := uc.Execute(context.Background(), &Request{TherapistID: 1, Date: tt.date})
			require.NoError(t, err)
			assert.Empty(t, resp.Slots)
		})
	}
}

func TestExecute_Errors(t *testing.T) {
	store, _, uc := setup(t)
	store.AddTherapist(domain.Therapist{ID: 2, UserID: 502})

	_, err := uc.Execute(context.Background(), &Request{TherapistID: 1, Date: day(5)})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = uc.Execute(context.Background(), &Request{TherapistID: 99, Date: day(7)})
	assert.ErrorIs(t, err, ErrTherapistNotFound)

	_, err = uc.Execute(context.Background(), &Request{TherapistID: 2, Date: day(7)})
	assert.ErrorIs(t, err, ErrNoActivatedTimes)

	_, err = uc.Execute(context.Background(), &Request{TherapistID: 0, Date: day(7)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
