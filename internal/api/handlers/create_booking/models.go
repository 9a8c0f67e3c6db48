package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	createBooking "github.com/m04kA/TheraConnect-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ChildID     int64  `json:"childId"`
	TherapistID int64  `json:"therapistId"`
	Date        string `json:"date"`      // "2024-11-07"
	StartTime   string `json:"startTime"` // "09:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                int64      `json:"id"`
	ParentID          int64      `json:"parentId"`
	ChildID           int64      `json:"childId"`
	TherapistID       int64      `json:"therapistId"`
	Date              string     `json:"date"`
	StartTime         string     `json:"startTime"`
	DurationMinutes   int        `json:"durationMinutes"`
	Status            string     `json:"status"`
	RecurrenceGroupID *uuid.UUID `json:"recurrenceGroupId,omitempty"`
	CreatedAt         string     `json:"createdAt"`
	UpdatedAt         string     `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(parentID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ParentID:    parentID,
		ChildID:     r.ChildID,
		TherapistID: r.TherapistID,
		Date:        date,
		StartTime:   startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                resp.ID,
		ParentID:          resp.ParentID,
		ChildID:           resp.ChildID,
		TherapistID:       resp.TherapistID,
		Date:              resp.SlotDate.Format(domain.DateFormat),
		StartTime:         resp.StartTime.String(),
		DurationMinutes:   resp.DurationMinutes,
		Status:            resp.Status,
		RecurrenceGroupID: resp.RecurrenceGroupID,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         resp.UpdatedAt.Format(time.RFC3339),
	}
}
