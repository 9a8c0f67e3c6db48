package process_leave

import (
	"time"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
)

// Request решение администратора по заявке
type Request struct {
	LeaveID    int64
	Action     domain.LeaveAction // APPROVE | REJECT
	AdminNotes *string
}

// Response обработанная заявка и отменённые бронирования
type Response struct {
	ID                  int64
	TherapistID         int64
	LeaveDate           time.Time
	Reason              *string
	Status              string
	AdminNotes          *string
	ProcessedAt         *time.Time
	CancelledBookingIDs []int64
}

// CancellationReason причина отмены бронирований при одобрении выходного
const CancellationReason = "therapist leave approved"
