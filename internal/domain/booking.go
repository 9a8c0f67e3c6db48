package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusScheduled BookingStatus = "SCHEDULED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// Booking links a child, its parent and a therapist to one slot
type Booking struct {
	ID                int64
	ParentID          int64
	ChildID           int64
	TherapistID       int64
	SlotDate          time.Time
	StartTime         types.TimeString
	DurationMinutes   int
	Status            BookingStatus
	RecurrenceGroupID *uuid.UUID // общий идентификатор бронирований, созданных одним месячным запросом

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusScheduled
}

// CanBeCompleted returns true if the session can be marked as completed
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusScheduled
}

// IsRecurring returns true if the booking belongs to a recurrence group
func (b *Booking) IsRecurring() bool {
	return b.RecurrenceGroupID != nil
}

// StartsAt returns the absolute start of the session in the location of SlotDate
func (b *Booking) StartsAt() (time.Time, error) {
	return b.StartTime.On(b.SlotDate)
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	ParentID          *int64
	TherapistID       *int64
	ChildID           *int64
	RecurrenceGroupID *uuid.UUID
	StartDate         *time.Time
	EndDate           *time.Time
	Status            *BookingStatus
	IncludeCancelled  bool
}

// IsValidBookingStatus проверяет, что статус входит в допустимый набор
func IsValidBookingStatus(s BookingStatus) bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
