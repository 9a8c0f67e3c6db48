package request_leave

import (
	"time"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	requestLeave "github.com/m04kA/TheraConnect-BookingService/internal/usecase/request_leave"
)

// LeaveRequest HTTP request model
type LeaveRequest struct {
	Date   string  `json:"date"` // "2024-11-20"
	Reason *string `json:"reason,omitempty"`
}

// LeaveResponse HTTP response model
type LeaveResponse struct {
	ID          int64   `json:"id"`
	TherapistID int64   `json:"therapistId"`
	LeaveDate   string  `json:"leaveDate"`
	Reason      *string `json:"reason,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
}

func (r *LeaveRequest) ToUseCaseRequest(userID int64) (*requestLeave.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	return &requestLeave.Request{UserID: userID, Date: date, Reason: r.Reason}, nil
}

func FromUseCaseResponse(resp *requestLeave.Response) *LeaveResponse {
	return &LeaveResponse{
		ID:          resp.ID,
		TherapistID: resp.TherapistID,
		LeaveDate:   resp.LeaveDate.Format(domain.DateFormat),
		Reason:      resp.Reason,
		Status:      resp.Status,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
