package create_feedback

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/middleware"
	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/sessions"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/sessions/models"
	"github.com/m04kA/TheraConnect-BookingService/pkg/logger"
)

type stubService struct {
	err        error
	gotBooking int64
	gotParent  int64
	gotReq     *models.CreateFeedbackRequest
}

func (s *stubService) CreateFeedback(_ context.Context, bookingID, parentID int64, req *models.CreateFeedbackRequest) (*models.FeedbackResponse, error) {
	s.gotBooking, s.gotParent, s.gotReq = bookingID, parentID, req
	if s.err != nil {
		return nil, s.err
	}
	return &models.FeedbackResponse{ID: 1, BookingID: bookingID, ParentID: parentID, Rating: req.Rating}, nil
}

func serve(svc *stubService, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/feedback", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/bookings/42/feedback", strings.NewReader(body))
	req = req.WithContext(middleware.WithUser(req.Context(), 7, domain.RoleParent))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	svc := &stubService{}
	rec := serve(svc, `{"rating":5,"comment":"thanks"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(42), svc.gotBooking)
	assert.Equal(t, int64(7), svc.gotParent)
	require.NotNil(t, svc.gotReq.Comment)
	assert.Equal(t, "thanks", *svc.gotReq.Comment)
	assert.Contains(t, rec.Body.String(), `"rating":5`)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"bad rating", sessions.ErrInvalidInput, http.StatusBadRequest},
		{"not found", sessions.ErrBookingNotFound, http.StatusNotFound},
		{"another parent", sessions.ErrAccessDenied, http.StatusForbidden},
		{"not completed", sessions.ErrSessionNotCompleted, http.StatusConflict},
		{"duplicate", sessions.ErrFeedbackAlreadyExists, http.StatusConflict},
		{"unexpected", sessions.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubService{err: tt.err}, `{"rating":3}`)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandle_InvalidBody(t *testing.T) {
	svc := &stubService{}
	rec := serve(svc, `{"rating":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.gotReq)
}
