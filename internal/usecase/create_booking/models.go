package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ParentID    int64            // ID родителя (из X-User-ID)
	ChildID     int64            // ID ребёнка
	TherapistID int64            // ID терапевта
	Date        time.Time        // Дата сессии (без времени)
	StartTime   types.TimeString // Время начала (например, "09:00")

	// RecurrenceGroupID задаётся генератором ежемесячных бронирований.
	// Для таких бронирований подтверждения не отправляются поштучно
	RecurrenceGroupID *uuid.UUID
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                int64
	ParentID          int64
	ChildID           int64
	TherapistID       int64
	SlotDate          time.Time
	StartTime         types.TimeString
	DurationMinutes   int
	Status            string
	RecurrenceGroupID *uuid.UUID
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
