package cancel_recurring_bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/TheraConnect-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	CancelGroup(ctx context.Context, groupID uuid.UUID, req *models.CancelBookingRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
