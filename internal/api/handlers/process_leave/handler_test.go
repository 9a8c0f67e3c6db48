package process_leave

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	processLeave "github.com/m04kA/TheraConnect-BookingService/internal/usecase/process_leave"
	"github.com/m04kA/TheraConnect-BookingService/pkg/logger"
)

type stubUseCase struct {
	got  *processLeave.Request
	resp *processLeave.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *processLeave.Request) (*processLeave.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(uc *stubUseCase, path, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/admin/leaves/{leaveId}", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPatch)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body)))
	return rec
}

func TestHandle_Approve(t *testing.T) {
	processed := time.Date(2024, 11, 10, 9, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &processLeave.Response{
		ID:                  11,
		TherapistID:         5,
		LeaveDate:           time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC),
		Status:              string(domain.LeaveApproved),
		ProcessedAt:         &processed,
		CancelledBookingIDs: []int64{1, 2},
	}}

	rec := serve(uc, "/admin/leaves/11", `{"action":"APPROVE","adminNotes":"ok"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(11), uc.got.LeaveID)
	assert.Equal(t, domain.LeaveActionApprove, uc.got.Action)

	var resp ProcessLeaveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2024-11-20", resp.LeaveDate)
	assert.Equal(t, []int64{1, 2}, resp.CancelledBookingIDs)
	require.NotNil(t, resp.ProcessedAt)
}

func TestHandle_RejectReturnsEmptyCancelledList(t *testing.T) {
	uc := &stubUseCase{resp: &processLeave.Response{ID: 11, Status: string(domain.LeaveRejected)}}

	rec := serve(uc, "/admin/leaves/11", `{"action":"REJECT"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"cancelledBookingIds":[]`)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"already processed", processLeave.ErrLeaveAlreadyProcessed, http.StatusConflict},
		{"concurrent update", processLeave.ErrConcurrentUpdate, http.StatusConflict},
		{"not found", processLeave.ErrLeaveNotFound, http.StatusNotFound},
		{"bad action", processLeave.ErrInvalidInput, http.StatusBadRequest},
		{"unexpected", processLeave.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubUseCase{err: tt.err}, "/admin/leaves/11", `{"action":"APPROVE"}`)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandle_InvalidLeaveID(t *testing.T) {
	uc := &stubUseCase{}
	rec := serve(uc, "/admin/leaves/abc", `{"action":"APPROVE"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}
