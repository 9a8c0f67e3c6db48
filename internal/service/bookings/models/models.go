package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	ParentID           int64  `json:"-"`
	CancellationReason string `json:"cancellationReason"`
}

// GetParentBookingsRequest запрос на получение бронирований родителя
type GetParentBookingsRequest struct {
	ParentID int64
	Status   *string
}

// GetTherapistBookingsRequest запрос на получение расписания терапевта
type GetTherapistBookingsRequest struct {
	UserID    int64
	StartDate *time.Time
	EndDate   *time.Time
	Status    *string
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                 int64      `json:"id"`
	ParentID           int64      `json:"parentId"`
	ChildID            int64      `json:"childId"`
	TherapistID        int64      `json:"therapistId"`
	Date               string     `json:"date"`      // "2024-11-07"
	StartTime          string     `json:"startTime"` // "09:00"
	DurationMinutes    int        `json:"durationMinutes"`
	Status             string     `json:"status"`
	RecurrenceGroupID  *uuid.UUID `json:"recurrenceGroupId,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *string    `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		ParentID:           b.ParentID,
		ChildID:            b.ChildID,
		TherapistID:        b.TherapistID,
		Date:               b.SlotDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		RecurrenceGroupID:  b.RecurrenceGroupID,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !domain.IsValidBookingStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
