package sessions

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/sessions/models"
	"github.com/m04kA/TheraConnect-BookingService/internal/testutil/memstore"
	"github.com/m04kA/TheraConnect-BookingService/pkg/logger"
	"github.com/m04kA/TheraConnect-BookingService/pkg/ptr"
)

const (
	parentID        int64 = 100
	otherParentID   int64 = 200
	therapistID     int64 = 1
	therapistUserID int64 = 501
	otherTherapist  int64 = 502
	adminUserID     int64 = 900
)

var (
	now        = time.Date(2024, 11, 8, 18, 0, 0, 0, time.UTC)
	sessionDay = time.Date(2024, 11, 7, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	store    *memstore.Store
	notifier *memstore.Notifier
	svc      *Service

	completed *domain.Booking
	scheduled *domain.Booking
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	store.AddTherapist(domain.Therapist{ID: therapistID, UserID: therapistUserID})
	store.AddTherapist(domain.Therapist{ID: 2, UserID: otherTherapist})

	f := &fixture{
		store:    store,
		notifier: &memstore.Notifier{},
	}
	f.completed = store.AddBooking(domain.Booking{
		ParentID: parentID, ChildID: 10, TherapistID: therapistID,
		SlotDate: sessionDay, StartTime: "09:00", Status: domain.StatusCompleted,
	})
	f.scheduled = store.AddBooking(domain.Booking{
		ParentID: parentID, ChildID: 10, TherapistID: therapistID,
		SlotDate: sessionDay.AddDate(0, 0, 7), StartTime: "09:00",
	})

	f.svc = NewService(
		store.Sessions(),
		store.Bookings(),
		store.Therapists(),
		f.notifier,
		time.UTC,
		logger.NewNop(),
	).WithTimeProvider(memstore.FixedClock{T: now})
	return f
}

func report() *models.CreateReportRequest {
	return &models.CreateReportRequest{
		Summary:         "  Worked on articulation of hissing sounds  ",
		Recommendations: ptr.Ptr("10 minutes of exercises daily"),
	}
}

func TestCreateReport(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.CreateReport(context.Background(), f.completed.ID, therapistUserID, report())
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, f.completed.ID, resp.BookingID)
	assert.Equal(t, therapistID, resp.TherapistID)
	assert.Equal(t, "Worked on articulation of hissing sounds", resp.Summary)
	assert.Nil(t, resp.Progress)

	msgs := f.notifier.For(parentID)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "2024-11-07")
	assert.Equal(t, now, msgs[0].SendAt)
}

func TestCreateReport_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		booking func(f *fixture) int64
		userID  int64
		req     *models.CreateReportRequest
		wantErr error
	}{
		{
			name:    "empty summary",
			booking: func(f *fixture) int64 { return f.completed.ID },
			userID:  therapistUserID,
			req:     &models.CreateReportRequest{Summary: "   "},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "summary too long",
			booking: func(f *fixture) int64 { return f.completed.ID },
			userID:  therapistUserID,
			req:     &models.CreateReportRequest{Summary: strings.Repeat("a", domain.MaxReportSummaryLength+1)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown booking",
			booking: func(*fixture) int64 { return 9999 },
			userID:  therapistUserID,
			req:     report(),
			wantErr: ErrBookingNotFound,
		},
		{
			name:    "another therapist",
			booking: func(f *fixture) int64 { return f.completed.ID },
			userID:  otherTherapist,
			req:     report(),
			wantErr: ErrAccessDenied,
		},
		{
			name:    "session not completed",
			booking: func(f *fixture) int64 { return f.scheduled.ID },
			userID:  therapistUserID,
			req:     report(),
			wantErr: ErrSessionNotCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.CreateReport(context.Background(), tt.booking(f), tt.userID, tt.req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.notifier.Count())
		})
	}
}

func TestCreateReport_OnePerSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateReport(context.Background(), f.completed.ID, therapistUserID, report())
	require.NoError(t, err)

	_, err = f.svc.CreateReport(context.Background(), f.completed.ID, therapistUserID, report())
	assert.ErrorIs(t, err, ErrReportAlreadyExists)
}

func TestGetReport_Access(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateReport(context.Background(), f.completed.ID, therapistUserID, report())
	require.NoError(t, err)

	tests := []struct {
		name    string
		userID  int64
		role    string
		wantErr error
	}{
		{name: "owning parent", userID: parentID, role: domain.RoleParent},
		{name: "session therapist", userID: therapistUserID, role: domain.RoleTherapist},
		{name: "admin", userID: adminUserID, role: domain.RoleAdmin},
		{name: "other parent", userID: otherParentID, role: domain.RoleParent, wantErr: ErrAccessDenied},
		{name: "other therapist", userID: otherTherapist, role: domain.RoleTherapist, wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.svc.GetReport(context.Background(), f.completed.ID, tt.userID, tt.role)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, f.completed.ID, resp.BookingID)
		})
	}
}

func TestGetReport_NotWrittenYet(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetReport(context.Background(), f.completed.ID, parentID, domain.RoleParent)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestCreateFeedback(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.CreateFeedback(context.Background(), f.completed.ID, parentID,
		&models.CreateFeedbackRequest{Rating: 5, Comment: ptr.Ptr("Great session")})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.Rating)
	assert.Equal(t, parentID, resp.ParentID)

	msgs := f.notifier.For(therapistUserID)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "5/5")

	got, err := f.svc.GetFeedback(context.Background(), f.completed.ID, therapistUserID, domain.RoleTherapist)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, got.ID)
}

func TestCreateFeedback_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		booking  func(f *fixture) int64
		parentID int64
		rating   int
		wantErr  error
	}{
		{name: "rating below scale", booking: func(f *fixture) int64 { return f.completed.ID }, parentID: parentID, rating: 0, wantErr: ErrInvalidInput},
		{name: "rating above scale", booking: func(f *fixture) int64 { return f.completed.ID }, parentID: parentID, rating: 6, wantErr: ErrInvalidInput},
		{name: "not the owner", booking: func(f *fixture) int64 { return f.completed.ID }, parentID: otherParentID, rating: 4, wantErr: ErrAccessDenied},
		{name: "session not completed", booking: func(f *fixture) int64 { return f.scheduled.ID }, parentID: parentID, rating: 4, wantErr: ErrSessionNotCompleted},
		{name: "unknown booking", booking: func(*fixture) int64 { return 9999 }, parentID: parentID, rating: 4, wantErr: ErrBookingNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.CreateFeedback(context.Background(), tt.booking(f), tt.parentID,
				&models.CreateFeedbackRequest{Rating: tt.rating})
			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.notifier.Count())
		})
	}
}

func TestCreateFeedback_OnePerSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateFeedback(context.Background(), f.completed.ID, parentID, &models.CreateFeedbackRequest{Rating: 4})
	require.NoError(t, err)

	_, err = f.svc.CreateFeedback(context.Background(), f.completed.ID, parentID, &models.CreateFeedbackRequest{Rating: 2})
	assert.ErrorIs(t, err, ErrFeedbackAlreadyExists)
}

type failingSessions struct {
	*memstore.Sessions
}

func (failingSessions) GetFeedbackByBooking(context.Context, int64) (*domain.SessionFeedback, error) {
	return nil, errors.New("connection reset")
}

func TestGetFeedback_RepositoryError(t *testing.T) {
	f := newFixture(t)
	f.svc.sessionRepo = failingSessions{Sessions: f.store.Sessions()}

	_, err := f.svc.GetFeedback(context.Background(), f.completed.ID, adminUserID, domain.RoleAdmin)
	assert.ErrorIs(t, err, ErrInternal)
}
