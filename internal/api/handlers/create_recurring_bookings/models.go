package create_recurring_bookings

import (
	"time"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/handlers/create_booking"
	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	createRecurring "github.com/m04kA/TheraConnect-BookingService/internal/usecase/create_recurring_bookings"
	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

// RecurringBookingRequest HTTP request model
type RecurringBookingRequest struct {
	ChildID     int64  `json:"childId"`
	TherapistID int64  `json:"therapistId"`
	StartDate   string `json:"startDate"` // "2024-11-07"
	StartTime   string `json:"startTime"` // "09:00"
}

// RecurringBookingResponse HTTP response model
type RecurringBookingResponse struct {
	RecurrenceGroupID string                            `json:"recurrenceGroupId"`
	StartDate         string                            `json:"startDate"`
	EndDate           string                            `json:"endDate"`
	StartTime         string                            `json:"startTime"`
	Created           []*create_booking.BookingResponse `json:"created"`
	Skipped           []SkippedDate                     `json:"skipped"`
}

// SkippedDate будний день без бронирования
type SkippedDate struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RecurringBookingRequest) ToUseCaseRequest(parentID int64) (*createRecurring.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createRecurring.Request{
		ParentID:    parentID,
		ChildID:     r.ChildID,
		TherapistID: r.TherapistID,
		StartTime:   startTime,
		StartDate:   startDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createRecurring.Response) *RecurringBookingResponse {
	created := make([]*create_booking.BookingResponse, 0, len(resp.Created))
	for _, b := range resp.Created {
		created = append(created, create_booking.FromUseCaseResponse(b))
	}

	skipped := make([]SkippedDate, 0, len(resp.Skipped))
	for _, s := range resp.Skipped {
		skipped = append(skipped, SkippedDate{Date: s.Date.Format(domain.DateFormat), Reason: s.Reason})
	}

	return &RecurringBookingResponse{
		RecurrenceGroupID: resp.RecurrenceGroupID.String(),
		StartDate:         resp.StartDate.Format(domain.DateFormat),
		EndDate:           resp.EndDate.Format(domain.DateFormat),
		StartTime:         resp.StartTime.String(),
		Created:           created,
		Skipped:           skipped,
	}
}
