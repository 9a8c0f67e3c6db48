package create_recurring_bookings

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	"github.com/m04kA/TheraConnect-BookingService/internal/testutil/memstore"
	"github.com/m04kA/TheraConnect-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/TheraConnect-BookingService/pkg/logger"
	"github.com/m04kA/TheraConnect-BookingService/pkg/metrics"
	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

const (
	therapistID     int64 = 1
	therapistUserID int64 = 501
	parentID        int64 = 100
	childID         int64 = 10
	otherParentID   int64 = 200
	otherChildID    int64 = 20
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// recordingCreator запоминает даты, на которые была попытка бронирования
type recordingCreator struct {
	next     BookingCreator
	mu       sync.Mutex
	attempts []time.Time
}

func (c *recordingCreator) Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error) {
	c.mu.Lock()
	c.attempts = append(c.attempts, req.Date)
	c.mu.Unlock()
	return c.next.Execute(ctx, req)
}

type fixture struct {
	store    *memstore.Store
	notifier *memstore.Notifier
	metrics  *metrics.Metrics
	creator  *recordingCreator
	uc       *UseCase
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	store := memstore.New()
	store.AddTherapist(domain.Therapist{
		ID:             therapistID,
		UserID:         therapistUserID,
		FullName:       "Dr. Anna Petrova",
		ActivatedTimes: []types.TimeString{"09:00", "10:00"},
	})
	store.AddChild(domain.Child{ID: childID, ParentID: parentID, Name: "Misha", Age: 6})
	store.AddChild(domain.Child{ID: otherChildID, ParentID: otherParentID, Name: "Sasha", Age: 7})

	notifier := &memstore.Notifier{}
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), "test")
	clock := memstore.FixedClock{T: now}

	single := create_booking.NewUseCase(
		store.Bookings(),
		store.Therapists(),
		store.Children(),
		store.Leaves(),
		memstore.NewCache(),
		notifier,
		m,
		memstore.NewTxManager(store, true),
		0,
		time.UTC,
		logger.NewNop(),
	).WithTimeProvider(clock)

	creator := &recordingCreator{next: single}

	return &fixture{
		store:    store,
		notifier: notifier,
		metrics:  m,
		creator:  creator,
		uc: NewUseCase(creator, store.Therapists(), store.Children(), notifier, time.UTC, logger.NewNop()).
			WithTimeProvider(clock),
	}
}

func request(start time.Time) *Request {
	return &Request{
		ParentID:    parentID,
		ChildID:     childID,
		TherapistID: therapistID,
		StartTime:   "09:00",
		StartDate:   start,
	}
}

func TestExecute_FullMonthOfWeekdays(t *testing.T) {
	f := newFixture(t, time.Date(2024, 11, 6, 12, 0, 0, 0, time.UTC))

	resp, err := f.uc.Execute(context.Background(), request(date(2024, 11, 7)))
	require.NoError(t, err)

	assert.Equal(t, date(2024, 11, 7), resp.StartDate)
	assert.Equal(t, date(2024, 12, 6), resp.EndDate)
	assert.Len(t, resp.Created, 22)
	assert.Empty(t, resp.Skipped)

	// ни одной попытки на субботу или воскресенье
	require.Len(t, f.creator.attempts, 22)
	for _, d := range f.creator.attempts {
		assert.False(t, domain.IsWeekend(d), "attempted weekend date %s", d.Format(domain.DateFormat))
	}

	for _, b := range f.store.AllBookings() {
		require.NotNil(t, b.RecurrenceGroupID)
		assert.Equal(t, resp.RecurrenceGroupID, *b.RecurrenceGroupID)
		assert.Equal(t, domain.StatusScheduled, b.Status)
	}

	// одно сводное уведомление родителю и терапевту
	assert.Len(t, f.notifier.For(parentID), 1)
	assert.Len(t, f.notifier.For(therapistUserID), 1)
	assert.Equal(t, 22.0, testutil.ToFloat64(f.metrics.BookingsCreated.WithLabelValues("recurring")))
}

func TestExecute_PartialSuccessKeepsCreatedBookings(t *testing.T) {
	f := newFixture(t, time.Date(2024, 11, 6, 12, 0, 0, 0, time.UTC))
	f.store.AddBooking(domain.Booking{
		ParentID: otherParentID, ChildID: otherChildID, TherapistID: therapistID,
		SlotDate: date(2024, 11, 12), StartTime: "09:00",
	})
	f.store.AddLeave(domain.Leave{TherapistID: therapistID, LeaveDate: date(2024, 11, 20), Status: domain.LeaveApproved})

	resp, err := f.uc.Execute(context.Background(), request(date(2024, 11, 7)))
	require.NoError(t, err)

	assert.Len(t, resp.Created, 20)
	require.Len(t, resp.Skipped, 2)
	assert.Equal(t, Skipped{Date: date(2024, 11, 12), Reason: ReasonSlotConflict}, resp.Skipped[0])
	assert.Equal(t, Skipped{Date: date(2024, 11, 20), Reason: ReasonOnLeave}, resp.Skipped[1])

	// 20 новых + 1 чужое бронирование
	assert.Len(t, f.store.AllBookings(), 21)
}

func TestExecute_MonthEndClamp(t *testing.T) {
	f := newFixture(t, time.Date(2024, 1, 30, 12, 0, 0, 0, time.UTC))

	resp, err := f.uc.Execute(context.Background(), request(date(2024, 1, 31)))
	require.NoError(t, err)

	assert.Equal(t, date(2024, 2, 28), resp.EndDate)
	assert.Len(t, resp.Created, 21)
	assert.Equal(t, date(2024, 2, 28), resp.Created[len(resp.Created)-1].SlotDate)
}

func TestExecute_EverythingTaken(t *testing.T) {
	f := newFixture(t, time.Date(2024, 11, 6, 12, 0, 0, 0, time.UTC))
	for _, d := range domain.DaysBetween(date(2024, 11, 7), date(2024, 12, 6)) {
		if !domain.IsWeekend(d) {
			f.store.AddBooking(domain.Booking{
				ParentID: otherParentID, ChildID: otherChildID, TherapistID: therapistID,
				SlotDate: d, StartTime: "09:00",
			})
		}
	}

	resp, err := f.uc.Execute(context.Background(), request(date(2024, 11, 7)))
	require.NoError(t, err)

	assert.Empty(t, resp.Created)
	assert.Len(t, resp.Skipped, 22)
	assert.Zero(t, f.notifier.Count())
}

func TestExecute_StartTodayAfterSlotSkipsFirstDay(t *testing.T) {
	f := newFixture(t, time.Date(2024, 11, 7, 9, 30, 0, 0, time.UTC))

	resp, err := f.uc.Execute(context.Background(), request(date(2024, 11, 7)))
	require.NoError(t, err)

	require.NotEmpty(t, resp.Skipped)
	assert.Equal(t, Skipped{Date: date(2024, 11, 7), Reason: ReasonAlreadyPassed}, resp.Skipped[0])
	assert.Len(t, resp.Created, 21)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     func() *Request
		wantErr error
	}{
		{
			name:    "weekend start",
			req:     func() *Request { return request(date(2024, 11, 9)) },
			wantErr: ErrWeekendStart,
		},
		{
			name:    "start in the past",
			req:     func() *Request { return request(date(2024, 11, 5)) },
			wantErr: ErrInvalidDate,
		},
		{
			name: "time not activated",
			req: func() *Request {
				r := request(date(2024, 11, 7))
				r.StartTime = "15:00"
				return r
			},
			wantErr: ErrTimeNotActivated,
		},
		{
			name: "unknown therapist",
			req: func() *Request {
				r := request(date(2024, 11, 7))
				r.TherapistID = 42
				return r
			},
			wantErr: ErrTherapistNotFound,
		},
		{
			name: "child of another parent",
			req: func() *Request {
				r := request(date(2024, 11, 7))
				r.ChildID = otherChildID
				return r
			},
			wantErr: ErrChildNotOwned,
		},
		{
			name: "missing time",
			req: func() *Request {
				r := request(date(2024, 11, 7))
				r.StartTime = ""
				return r
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, time.Date(2024, 11, 6, 12, 0, 0, 0, time.UTC))

			_, err := f.uc.Execute(context.Background(), tt.req())
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.creator.attempts)
			assert.Empty(t, f.store.AllBookings())
		})
	}
}
