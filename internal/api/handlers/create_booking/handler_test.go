package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/handlers"
	"github.com/m04kA/TheraConnect-BookingService/internal/api/middleware"
	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	createBooking "github.com/m04kA/TheraConnect-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/TheraConnect-BookingService/pkg/logger"
)

type stubUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

func doRequest(t *testing.T, uc *stubUseCase, body string, withUser bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if withUser {
		req = req.WithContext(middleware.WithUser(req.Context(), 7, domain.RoleParent))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

const validBody = `{"childId":3,"therapistId":5,"date":"2024-11-20","startTime":"10:00"}`

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{resp: &createBooking.Response{
		ID:              42,
		ParentID:        7,
		ChildID:         3,
		TherapistID:     5,
		SlotDate:        time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: domain.SlotDurationMinutes,
		Status:          string(domain.StatusScheduled),
	}}

	rec := doRequest(t, uc, validBody, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(7), uc.got.ParentID)
	assert.Equal(t, "10:00", uc.got.StartTime.String())

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "2024-11-20", resp.Date)
	assert.Equal(t, "SCHEDULED", resp.Status)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"slot conflict", createBooking.ErrSlotConflict, http.StatusConflict},
		{"therapist on leave", createBooking.ErrTherapistOnLeave, http.StatusConflict},
		{"therapist inactive", createBooking.ErrTherapistInactive, http.StatusConflict},
		{"child of another parent", createBooking.ErrChildNotOwned, http.StatusForbidden},
		{"child not found", createBooking.ErrChildNotFound, http.StatusNotFound},
		{"weekend", createBooking.ErrNotWorkingDay, http.StatusBadRequest},
		{"past date", createBooking.ErrInvalidDate, http.StatusBadRequest},
		{"unexpected", createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &stubUseCase{err: tt.err}, validBody, true)
			assert.Equal(t, tt.want, rec.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.want, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestHandle_BadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"childId":`},
		{"unknown field", `{"childId":3,"therapistId":5,"date":"2024-11-20","startTime":"10:00","extra":1}`},
		{"bad date", `{"childId":3,"therapistId":5,"date":"20.11.2024","startTime":"10:00"}`},
		{"bad time", `{"childId":3,"therapistId":5,"date":"2024-11-20","startTime":"25:00"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{}
			rec := doRequest(t, uc, tt.body, true)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_NoUser(t *testing.T) {
	rec := doRequest(t, &stubUseCase{}, validBody, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
