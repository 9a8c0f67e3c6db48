package process_leave

import (
	"time"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	processLeave "github.com/m04kA/TheraConnect-BookingService/internal/usecase/process_leave"
)

// ProcessLeaveRequest HTTP request model
type ProcessLeaveRequest struct {
	Action     string  `json:"action"` // APPROVE | REJECT
	AdminNotes *string `json:"adminNotes,omitempty"`
}

// ProcessLeaveResponse HTTP response model
type ProcessLeaveResponse struct {
	ID                  int64   `json:"id"`
	TherapistID         int64   `json:"therapistId"`
	LeaveDate           string  `json:"leaveDate"`
	Reason              *string `json:"reason,omitempty"`
	Status              string  `json:"status"`
	AdminNotes          *string `json:"adminNotes,omitempty"`
	ProcessedAt         *string `json:"processedAt,omitempty"`
	CancelledBookingIDs []int64 `json:"cancelledBookingIds"`
}

func (r *ProcessLeaveRequest) ToUseCaseRequest(leaveID int64) *processLeave.Request {
	return &processLeave.Request{
		LeaveID:    leaveID,
		Action:     domain.LeaveAction(r.Action),
		AdminNotes: r.AdminNotes,
	}
}

func FromUseCaseResponse(resp *processLeave.Response) *ProcessLeaveResponse {
	out := &ProcessLeaveResponse{
		ID:                  resp.ID,
		TherapistID:         resp.TherapistID,
		LeaveDate:           resp.LeaveDate.Format(domain.DateFormat),
		Reason:              resp.Reason,
		Status:              resp.Status,
		AdminNotes:          resp.AdminNotes,
		CancelledBookingIDs: resp.CancelledBookingIDs,
	}
	if out.CancelledBookingIDs == nil {
		out.CancelledBookingIDs = []int64{}
	}
	if resp.ProcessedAt != nil {
		processed := resp.ProcessedAt.Format(time.RFC3339)
		out.ProcessedAt = &processed
	}
	return out
}
