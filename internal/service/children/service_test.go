package children

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/children/models"
	"github.com/m04kA/TheraConnect-BookingService/internal/testutil/memstore"
	"github.com/m04kA/TheraConnect-BookingService/pkg/logger"
	"github.com/m04kA/TheraConnect-BookingService/pkg/ptr"
)

const (
	parentID      int64 = 100
	otherParentID int64 = 200
)

func newService(store *memstore.Store) *Service {
	return NewService(store.Children(), store.Bookings(), memstore.NewTxManager(store, true), logger.NewNop())
}

func TestCreateAndList(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, parentID, &models.ChildRequest{Name: "  Mia ", Age: 6, Condition: ptr.Ptr("speech delay")})
	require.NoError(t, err)
	assert.Equal(t, "Mia", created.Name)
	assert.Equal(t, parentID, created.ParentID)

	_, err = svc.Create(ctx, otherParentID, &models.ChildRequest{Name: "Leo", Age: 4})
	require.NoError(t, err)

	list, err := svc.List(ctx, parentID)
	require.NoError(t, err)
	require.Len(t, list.Children, 1)
	assert.Equal(t, created.ID, list.Children[0].ID)
}

func TestCreate_Validation(t *testing.T) {
	svc := newService(memstore.New())

	tests := []struct {
		name string
		req  *models.ChildRequest
	}{
		{name: "nil body", req: nil},
		{name: "empty name", req: &models.ChildRequest{Name: "   ", Age: 5}},
		{name: "long name", req: &models.ChildRequest{Name: strings.Repeat("a", domain.MaxChildNameLength+1), Age: 5}},
		{name: "negative age", req: &models.ChildRequest{Name: "Mia", Age: -1}},
		{name: "adult", req: &models.ChildRequest{Name: "Mia", Age: 19}},
		{name: "long notes", req: &models.ChildRequest{Name: "Mia", Age: 5, Notes: ptr.Ptr(strings.Repeat("n", domain.MaxNotesLength+1))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), parentID, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetAndUpdate_Ownership(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	ctx := context.Background()
	child := store.AddChild(domain.Child{ParentID: parentID, Name: "Mia", Age: 6})

	_, err := svc.Get(ctx, otherParentID, child.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Get(ctx, parentID, 42)
	assert.ErrorIs(t, err, ErrChildNotFound)

	_, err = svc.Update(ctx, otherParentID, child.ID, &models.ChildRequest{Name: "Other", Age: 3})
	assert.ErrorIs(t, err, ErrAccessDenied)

	updated, err := svc.Update(ctx, parentID, child.ID, &models.ChildRequest{Name: "Mia K.", Age: 7})
	require.NoError(t, err)
	assert.Equal(t, "Mia K.", updated.Name)
	assert.Equal(t, 7, updated.Age)

	got, err := svc.Get(ctx, parentID, child.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mia K.", got.Name)
}

func TestDelete(t *testing.T) {
	store := memstore.New()
	svc := newService(store)
	ctx := context.Background()
	day := time.Date(2024, 11, 11, 0, 0, 0, 0, time.UTC)

	busy := store.AddChild(domain.Child{ParentID: parentID, Name: "Mia", Age: 6})
	store.AddBooking(domain.Booking{ParentID: parentID, ChildID: busy.ID, TherapistID: 1, SlotDate: day, StartTime: "09:00"})

	done := store.AddChild(domain.Child{ParentID: parentID, Name: "Leo", Age: 4})
	store.AddBooking(domain.Booking{ParentID: parentID, ChildID: done.ID, TherapistID: 1, SlotDate: day, StartTime: "10:00", Status: domain.StatusCompleted})

	assert.ErrorIs(t, svc.Delete(ctx, otherParentID, done.ID), ErrAccessDenied)
	assert.ErrorIs(t, svc.Delete(ctx, parentID, busy.ID), ErrChildHasBookings)

	require.NoError(t, svc.Delete(ctx, parentID, done.ID))
	_, err := svc.Get(ctx, parentID, done.ID)
	assert.ErrorIs(t, err, ErrChildNotFound)

	_, err = svc.Get(ctx, parentID, busy.ID)
	assert.NoError(t, err)
}
