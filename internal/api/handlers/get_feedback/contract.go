package get_feedback

import (
	"context"

	"github.com/m04kA/TheraConnect-BookingService/internal/service/sessions/models"
)

type SessionService interface {
	GetFeedback(ctx context.Context, bookingID int64, userID int64, role string) (*models.FeedbackResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
