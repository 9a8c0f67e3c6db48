package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	"github.com/m04kA/TheraConnect-BookingService/internal/testutil/memstore"
	"github.com/m04kA/TheraConnect-BookingService/pkg/logger"
)

func TestSummary(t *testing.T) {
	store := memstore.New()
	store.AddTherapist(domain.Therapist{ID: 1, UserID: 501})
	store.AddTherapist(domain.Therapist{ID: 2, UserID: 502, Status: domain.TherapistPending})
	store.AddChild(domain.Child{ParentID: 100, Name: "Mia", Age: 6})

	day := time.Date(2024, 11, 7, 0, 0, 0, 0, time.UTC)
	store.AddBooking(domain.Booking{ParentID: 100, ChildID: 1, TherapistID: 1, SlotDate: day, StartTime: "09:00"})
	store.AddBooking(domain.Booking{ParentID: 100, ChildID: 1, TherapistID: 1, SlotDate: day, StartTime: "10:00", Status: domain.StatusCancelled})
	store.AddLeave(domain.Leave{TherapistID: 1, LeaveDate: day})
	store.AddLeave(domain.Leave{TherapistID: 1, LeaveDate: day.AddDate(0, 0, 1), Status: domain.LeaveRejected})

	ctx := context.Background()
	_, err := store.Sessions().CreateFeedback(ctx, &domain.SessionFeedback{BookingID: 1, ParentID: 100, Rating: 5})
	require.NoError(t, err)
	_, err = store.Sessions().CreateFeedback(ctx, &domain.SessionFeedback{BookingID: 2, ParentID: 100, Rating: 4})
	require.NoError(t, err)

	svc := NewService(store.Bookings(), store.Therapists(), store.Children(), store.Leaves(), store.Sessions(),
		memstore.NewTxManager(store, false), logger.NewNop())

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"SCHEDULED": 1, "COMPLETED": 0, "CANCELLED": 1}, summary.BookingsByStatus)
	assert.Equal(t, map[string]int{"active": 1, "pending": 1}, summary.TherapistsByStatus)
	assert.Equal(t, 1, summary.Children)
	assert.Equal(t, 1, summary.PendingLeaves)
	assert.Equal(t, 2, summary.FeedbackCount)
	assert.InDelta(t, 4.5, summary.AverageRating, 1e-9)
}

type failingChildren struct{}

func (failingChildren) Count(context.Context) (int, error) {
	return 0, errors.New("connection reset")
}

func TestSummary_RepositoryError(t *testing.T) {
	store := memstore.New()
	svc := NewService(store.Bookings(), store.Therapists(), failingChildren{}, store.Leaves(), store.Sessions(),
		memstore.NewTxManager(store, false), logger.NewNop())

	_, err := svc.Summary(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
