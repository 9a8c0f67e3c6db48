package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/bookings/models"
	"github.com/m04kA/TheraConnect-BookingService/internal/testutil/memstore"
	"github.com/m04kA/TheraConnect-BookingService/pkg/logger"
	"github.com/m04kA/TheraConnect-BookingService/pkg/ptr"
	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

const (
	parentID        int64 = 100
	otherParentID   int64 = 200
	therapistID     int64 = 1
	therapistUserID int64 = 501
)

var (
	now      = time.Date(2024, 11, 10, 8, 0, 0, 0, time.UTC)
	tomorrow = time.Date(2024, 11, 11, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	store    *memstore.Store
	cache    *memstore.Cache
	notifier *memstore.Notifier
	svc      *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	store.AddTherapist(domain.Therapist{ID: therapistID, UserID: therapistUserID, ActivatedTimes: []types.TimeString{"09:00", "10:00"}})
	store.AddTherapist(domain.Therapist{ID: 2, UserID: 502, ActivatedTimes: []types.TimeString{"09:00"}})

	f := &fixture{
		store:    store,
		cache:    memstore.NewCache(),
		notifier: &memstore.Notifier{},
	}
	f.svc = NewService(
		store.Bookings(),
		store.Therapists(),
		f.cache,
		f.notifier,
		memstore.NewTxManager(store, true),
		time.UTC,
		logger.NewNop(),
	).WithTimeProvider(memstore.FixedClock{T: now})

	return f
}

func TestGetByID_Access(t *testing.T) {
	f := newFixture(t)
	b := f.store.AddBooking(domain.Booking{ParentID: parentID, ChildID: 10, TherapistID: therapistID, SlotDate: tomorrow, StartTime: "09:00"})

	tests := []struct {
		name    string
		userID  int64
		role    string
		wantErr error
	}{
		{name: "owner parent", userID: parentID, role: domain.RoleParent},
		{name: "booking therapist", userID: therapistUserID, role: domain.RoleTherapist},
		{name: "admin", userID: 9000, role: domain.RoleAdmin},
		{name: "other parent", userID: otherParentID, role: domain.RoleParent, wantErr: ErrAccessDenied},
		{name: "other therapist", userID: 502, role: domain.RoleTherapist, wantErr: ErrAccessDenied},
		{name: "unknown role", userID: parentID, role: "guest", wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.svc.GetByID(context.Background(), b.ID, tt.userID, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, b.ID, resp.ID)
			assert.Equal(t, "2024-11-11", resp.Date)
			assert.Equal(t, "09:00", resp.StartTime)
			assert.Equal(t, "SCHEDULED", resp.Status)
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetByID(context.Background(), 42, parentID, domain.RoleParent)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetParentBookings(t *testing.T) {
	f := newFixture(t)
	f.store.AddBooking(domain.Booking{ParentID: parentID, ChildID: 10, TherapistID: therapistID, SlotDate: tomorrow, StartTime: "09:00"})
	f.store.AddBooking(domain.Booking{ParentID: parentID, ChildID: 10, TherapistID: therapistID, SlotDate: tomorrow, StartTime: "10:00", Status: domain.StatusCancelled})
	f.store.AddBooking(domain.Booking{ParentID: otherParentID, ChildID: 20, TherapistID: 2, SlotDate: tomorrow, StartTime: "09:00"})

	all, err := f.svc.GetParentBookings(context.Background(), &models.GetParentBookingsRequest{ParentID: parentID})
	require.NoError(t, err)
	assert.Len(t, all.Bookings, 2)

	cancelled, err := f.svc.GetParentBookings(context.Background(), &models.GetParentBookingsRequest{ParentID: parentID, Status: ptr.Ptr("CANCELLED")})
	require.NoError(t, err)
	require.Len(t, cancelled.Bookings, 1)
	assert.Equal(t, "10:00", cancelled.Bookings[0].StartTime)

	_, err = f.svc.GetParentBookings(context.Background(), &models.GetParentBookingsRequest{ParentID: parentID, Status: ptr.Ptr("scheduled")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetTherapistBookings(t *testing.T) {
	f := newFixture(t)
	f.store.AddBooking(domain.Booking{ParentID: parentID, ChildID: 10, TherapistID: therapistID, SlotDate: tomorrow, StartTime: "09:00"})
	f.store.AddBooking(domain.Booking{ParentID: parentID, ChildID: 10, TherapistID: therapistID, SlotDate: tomorrow.AddDate(0, 0, 7), StartTime: "09:00"})
	f.store.AddBooking(domain.Booking{ParentID: parentID, ChildID: 10, TherapistID: therapistID, SlotDate: tomorrow, StartTime: "10:00", Status: domain.StatusCancelled})
	f.store.AddBooking(domain.Booking{ParentID: otherParentID, ChildID: 20, TherapistID: 2, SlotDate: tomorrow, StartTime: "09:00"})

	from, to := tomorrow, tomorrow.AddDate(0, 0, 1)
	resp, err := f.svc.GetTherapistBookings(context.Background(), &models.GetTherapistBookingsRequest{UserID: therapistUserID, StartDate: &from, EndDate: &to})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, therapistID, resp.Bookings[0].TherapistID)
	assert.Equal(t, "09:00", resp.Bookings[0].StartTime)

	_, err = f.svc.GetTherapistBookings(context.Background(), &models.GetTherapistBookingsRequest{UserID: parentID})
	assert.ErrorIs(t, err, ErrTherapistNotFound)

	_, err = f.svc.GetTherapistBookings(context.Background(), &models.GetTherapistBookingsRequest{UserID: therapistUserID, StartDate: &to, EndDate: &from})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	b := f.store.AddBooking(domain.Booking{ParentID: parentID, ChildID: 10, TherapistID: therapistID, SlotDate: tomorrow, StartTime: "09:00"})

	resp, err := f.svc.Cancel(context.Background(), b.ID, &models.CancelBookingRequest{ParentID: parentID})
	require.NoError(t, err)

	assert.Equal(t, "CANCELLED", resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, defaultCancellationReason, *resp.CancellationReason)
	assert.NotNil(t, resp.CancelledAt)

	assert.Equal(t, []string{"2024-11-11"}, f.cache.Invalidated)
	require.Len(t, f.notifier.For(therapistUserID), 1)
	assert.Contains(t, f.notifier.For(therapistUserID)[0].Text, "cancelled")

	// повторная отмена
	_, err = f.svc.Cancel(context.Background(), b.ID, &models.CancelBookingRequest{ParentID: parentID})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_Rejections(t *testing.T) {
	f := newFixture(t)
	scheduled := f.store.AddBooking(domain.Booking{ParentID: parentID, ChildID: 10, TherapistID: therapistID, SlotDate: tomorrow, StartTime: "09:00"})
	completed := f.store.AddBooking(domain.Booking{ParentID: parentID, ChildID: 10, TherapistID: therapistID, SlotDate: tomorrow, StartTime: "10:00", Status: domain.StatusCompleted})

	longReason := string(make([]rune, domain.MaxCancellationReasonLength+1))

	tests := []struct {
		name    string
		id      int64
		req     *models.CancelBookingRequest
		wantErr error
	}{
		{name: "not found", id: 42, req: &models.CancelBookingRequest{ParentID: parentID}, wantErr: ErrBookingNotFound},
		{name: "other parent", id: scheduled.ID, req: &models.CancelBookingRequest{ParentID: otherParentID}, wantErr: ErrAccessDenied},
		{name: "completed", id: completed.ID, req: &models.CancelBookingRequest{ParentID: parentID}, wantErr: ErrCannotCancel},
		{name: "reason too long", id: scheduled.ID, req: &models.CancelBookingRequest{ParentID: parentID, CancellationReason: longReason}, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Cancel(context.Background(), tt.id, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Empty(t, f.cache.Invalidated)
	assert.Zero(t, f.notifier.Count())
}

func TestCancelGroup_CancelsOnlyFuture(t *testing.T) {
	f := newFixture(t)
	group := uuid.New()

	past := f.store.AddBooking(domain.Booking{ParentID: parentID, ChildID: 10, TherapistID: therapistID, SlotDate: now.AddDate(0, 0, -3), StartTime: "09:00", RecurrenceGroupID: &group, Status: domain.StatusCompleted})
	future := []*domain.Booking{
		f.store.AddBooking(domain.Booking{ParentID: parentID, ChildID: 10, TherapistID: therapistID, SlotDate: tomorrow, StartTime: "09:00", RecurrenceGroupID: &group}),
		f.store.AddBooking(domain.Booking{ParentID: parentID, ChildID: 10, TherapistID: therapistID, SlotDate: tomorrow.AddDate(0, 0, 1), StartTime: "09:00", RecurrenceGroupID: &group}),
	}
	single := f.store.AddBooking(domain.Booking{ParentID: parentID, ChildID: 10, TherapistID: therapistID, SlotDate: tomorrow, StartTime: "10:00"})

	resp, err := f.svc.CancelGroup(context.Background(), group, &models.CancelBookingRequest{ParentID: parentID, CancellationReason: "moving"})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)

	statuses := map[int64]domain.BookingStatus{}
	for _, b := range f.store.AllBookings() {
		statuses[b.ID] = b.Status
	}
	assert.Equal(t, domain.StatusCompleted, statuses[past.ID])
	assert.Equal(t, domain.StatusCancelled, statuses[future[0].ID])
	assert.Equal(t, domain.StatusCancelled, statuses[future[1].ID])
	assert.Equal(t, domain.StatusScheduled, statuses[single.ID])

	assert.ElementsMatch(t, []string{"2024-11-11", "2024-11-12"}, f.cache.Invalidated)
	assert.Len(t, f.notifier.For(therapistUserID), 1)
}

func TestCancelGroup_Rejections(t *testing.T) {
	f := newFixture(t)
	group := uuid.New()
	f.store.AddBooking(domain.Booking{ParentID: parentID, ChildID: 10, TherapistID: therapistID, SlotDate: tomorrow, StartTime: "09:00", RecurrenceGroupID: &group})

	_, err := f.svc.CancelGroup(context.Background(), uuid.New(), &models.CancelBookingRequest{ParentID: parentID})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.svc.CancelGroup(context.Background(), group, &models.CancelBookingRequest{ParentID: otherParentID})
	assert.ErrorIs(t, err, ErrAccessDenied)

	for _, b := range f.store.AllBookings() {
		assert.Equal(t, domain.StatusScheduled, b.Status)
	}
}

func TestComplete(t *testing.T) {
	f := newFixture(t)
	b := f.store.AddBooking(domain.Booking{ParentID: parentID, ChildID: 10, TherapistID: therapistID, SlotDate: tomorrow, StartTime: "09:00"})

	_, err := f.svc.Complete(context.Background(), b.ID, parentID, domain.RoleParent)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.Complete(context.Background(), b.ID, 502, domain.RoleTherapist)
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := f.svc.Complete(context.Background(), b.ID, therapistUserID, domain.RoleTherapist)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", resp.Status)

	_, err = f.svc.Complete(context.Background(), b.ID, 9000, domain.RoleAdmin)
	assert.ErrorIs(t, err, ErrCannotComplete)

	_, err = f.svc.Cancel(context.Background(), b.ID, &models.CancelBookingRequest{ParentID: parentID})
	assert.ErrorIs(t, err, ErrCannotCancel)
}
