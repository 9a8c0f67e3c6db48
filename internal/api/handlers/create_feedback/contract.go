package create_feedback

import (
	"context"

	"github.com/m04kA/TheraConnect-BookingService/internal/service/sessions/models"
)

type SessionService interface {
	CreateFeedback(ctx context.Context, bookingID int64, parentID int64, req *models.CreateFeedbackRequest) (*models.FeedbackResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
