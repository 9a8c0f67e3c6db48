package create_recurring_bookings

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TheraConnect-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

// Request модель запроса на ежемесячное бронирование
type Request struct {
	ParentID    int64
	ChildID     int64
	TherapistID int64
	StartTime   types.TimeString // Ежедневное время сессии
	StartDate   time.Time        // Первый день (будний)
}

// Response результат генерации: созданные и пропущенные даты
type Response struct {
	RecurrenceGroupID uuid.UUID
	StartDate         time.Time
	EndDate           time.Time
	StartTime         types.TimeString
	Created           []*create_booking.Response
	Skipped           []Skipped
}

// Skipped будний день, который не удалось забронировать
type Skipped struct {
	Date   time.Time
	Reason string
}

// Причины пропуска даты
const (
	ReasonSlotConflict  = "slot already booked"
	ReasonOnLeave       = "therapist is on leave"
	ReasonAlreadyPassed = "session time has already passed"
	ReasonFailed        = "booking failed"
)
