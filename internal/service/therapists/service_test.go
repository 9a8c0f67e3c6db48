package therapists

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/therapists/models"
	"github.com/m04kA/TheraConnect-BookingService/internal/testutil/memstore"
	"github.com/m04kA/TheraConnect-BookingService/pkg/logger"
	"github.com/m04kA/TheraConnect-BookingService/pkg/ptr"
	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

func newService(store *memstore.Store) *Service {
	return NewService(store.Therapists(), store.Leaves(), logger.NewNop())
}

func TestList_DefaultsToActive(t *testing.T) {
	store := memstore.New()
	store.AddTherapist(domain.Therapist{ID: 1, UserID: 501, FullName: "Anna", Specialization: "Speech therapy", ActivatedTimes: []types.TimeString{"09:00"}})
	store.AddTherapist(domain.Therapist{ID: 2, UserID: 502, FullName: "Boris", Specialization: "Occupational therapy"})
	store.AddTherapist(domain.Therapist{ID: 3, UserID: 503, FullName: "Carl", Specialization: "Speech therapy", Status: domain.TherapistSuspended})
	svc := newService(store)
	ctx := context.Background()

	active, err := svc.List(ctx, &models.ListTherapistsRequest{})
	require.NoError(t, err)
	assert.Len(t, active.Therapists, 2)

	speech, err := svc.List(ctx, &models.ListTherapistsRequest{Specialization: ptr.Ptr("speech")})
	require.NoError(t, err)
	require.Len(t, speech.Therapists, 1)
	assert.Equal(t, "Anna", speech.Therapists[0].FullName)
	assert.Equal(t, []string{"09:00"}, speech.Therapists[0].ActivatedTimes)

	suspended, err := svc.List(ctx, &models.ListTherapistsRequest{Status: ptr.Ptr("suspended")})
	require.NoError(t, err)
	require.Len(t, suspended.Therapists, 1)
	assert.Equal(t, int64(3), suspended.Therapists[0].ID)

	_, err = svc.List(ctx, &models.ListTherapistsRequest{Status: ptr.Ptr("retired")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGet(t *testing.T) {
	store := memstore.New()
	store.AddTherapist(domain.Therapist{ID: 1, UserID: 501, FullName: "Anna"})
	svc := newService(store)

	resp, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Anna", resp.FullName)
	assert.Equal(t, "active", resp.Status)

	_, err = svc.Get(context.Background(), 2)
	assert.ErrorIs(t, err, ErrTherapistNotFound)
}

func TestActivateTimes(t *testing.T) {
	store := memstore.New()
	store.AddTherapist(domain.Therapist{ID: 1, UserID: 501})
	svc := newService(store)
	ctx := context.Background()

	resp, err := svc.ActivateTimes(ctx, 501, &models.ActivateTimesRequest{Times: []string{"14:00", "09:00", "10:00"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00", "14:00"}, resp.ActivatedTimes)

	// набор неизменяем после первой активации
	_, err = svc.ActivateTimes(ctx, 501, &models.ActivateTimesRequest{Times: []string{"11:00"}})
	assert.ErrorIs(t, err, ErrTimesAlreadyActivated)

	_, err = svc.ActivateTimes(ctx, 999, &models.ActivateTimesRequest{Times: []string{"11:00"}})
	assert.ErrorIs(t, err, ErrTherapistNotFound)
}

func TestActivateTimes_Validation(t *testing.T) {
	store := memstore.New()
	store.AddTherapist(domain.Therapist{ID: 1, UserID: 501})
	svc := newService(store)

	tests := []struct {
		name  string
		times []string
	}{
		{name: "empty", times: nil},
		{name: "too many", times: []string{"08:00", "09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00", "18:00"}},
		{name: "bad format", times: []string{"9:00"}},
		{name: "not on the hour", times: []string{"09:30"}},
		{name: "duplicate", times: []string{"09:00", "09:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ActivateTimes(context.Background(), 501, &models.ActivateTimesRequest{Times: tt.times})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestLeaves(t *testing.T) {
	store := memstore.New()
	store.AddTherapist(domain.Therapist{ID: 1, UserID: 501})
	store.AddTherapist(domain.Therapist{ID: 2, UserID: 502})
	day := time.Date(2024, 11, 7, 0, 0, 0, 0, time.UTC)
	store.AddLeave(domain.Leave{TherapistID: 1, LeaveDate: day})
	store.AddLeave(domain.Leave{TherapistID: 1, LeaveDate: day.AddDate(0, 0, 1), Status: domain.LeaveApproved})
	store.AddLeave(domain.Leave{TherapistID: 2, LeaveDate: day})
	svc := newService(store)
	ctx := context.Background()

	own, err := svc.ListOwnLeaves(ctx, 501, nil)
	require.NoError(t, err)
	require.Len(t, own.Leaves, 2)
	assert.Equal(t, "2024-11-07", own.Leaves[0].LeaveDate)

	queue, err := svc.ListLeaves(ctx, ptr.Ptr("PENDING"))
	require.NoError(t, err)
	assert.Len(t, queue.Leaves, 2)

	_, err = svc.ListLeaves(ctx, ptr.Ptr("pending"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ListOwnLeaves(ctx, 100, nil)
	assert.ErrorIs(t, err, ErrTherapistNotFound)
}
