package check_availability

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

func day(d int) time.Time {
	return time.Date(2024, 11, d, 0, 0, 0, 0, time.UTC)
}

func setup() (*memstore.Store, *UseCase) {
	store := memstore.New()
	store.AddTherapist(domain.Therapist{ID: 1, UserID: 501, ActivatedTimes: []types.TimeString{"09:00", "10:00", "15:00"}})
	store.AddTherapist(domain.Therapist{ID: 2, UserID: 502})
	store.AddTherapist(domain.Therapist{ID: 3, UserID: 503, Status: domain.TherapistInactive, ActivatedTimes: []types.TimeString{"09:00"}})
	store.AddBooking(domain.Booking{ParentID: 100, ChildID: 10, TherapistID: 1, SlotDate: day(7), StartTime: "09:00"})
	store.AddBooking(domain.Booking{ParentID: 100, ChildID: 10, TherapistID: 1, SlotDate: day(7), StartTime: "10:00", Status: domain.StatusCancelled})
	store.AddLeave(domain.Leave{TherapistID: 1, LeaveDate: day(8), Status: domain.LeaveApproved})

	uc := NewUseCase(store.Therapists(), store.Bookings(), store.Leaves(), time.UTC, logger.NewNop()).
		WithTimeProvider(memstore.FixedClock{T: time.Date(2024, 11, 6, 12, 0, 0, 0, time.UTC)})
	return store, uc
}

func TestExecute_Availability(t *testing.T) {
	tests := []struct {
		name        string
		therapistID int64
		date        time.Time
		at          types.TimeString
		want        bool
	}{
		{name: "booked slot", therapistID: 1, date: day(7), at: "09:00", want: false},
		{name: "cancelled booking frees slot", therapistID: 1, date: day(7), at: "10:00", want: true},
		{name: "free slot", therapistID: 1, date: day(7), at: "15:00", want: true},
		{name: "approved leave", therapistID: 1, date: day(8), at: "09:00", want: false},
		{name: "weekend", therapistID: 1, date: day(9), at: "09:00", want: false},
		{name: "today before start", therapistID: 1, date: day(6), at: "15:00", want: true},
		{name: "today already started", therapistID: 1, date: day(6), at: "10:00", want: false},
		{name: "inactive therapist", therapistID: 3, date: day(7), at: "09:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, uc := setup()

			resp, err := uc.Execute(context.Background(), &Request{TherapistID: tt.therapistID, Date: tt.date, StartTime: tt.at})
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Available)
		})
	}
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "past date", req: &Request{TherapistID: 1, Date: day(5), StartTime: "09:00"}, wantErr: ErrInvalidDate},
		{name: "time not activated", req: &Request{TherapistID: 1, Date: day(7), StartTime: "11:00"}, wantErr: ErrTimeNotActivated},
		{name: "unknown therapist", req: &Request{TherapistID: 99, Date: day(7), StartTime: "09:00"}, wantErr: ErrTherapistNotFound},
		{name: "no activated times", req: &Request{TherapistID: 2, Date: day(7), StartTime: "09:00"}, wantErr: ErrNoActivatedTimes},
		{name: "bad time", req: &Request{TherapistID: 1, Date: day(7), StartTime: "25:00"}, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, uc := setup()

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
