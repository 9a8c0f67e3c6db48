package get_session_report

import (
	"context"

	"github.com/m04kA/TheraConnect-BookingService/internal/service/sessions/models"
)

type SessionService interface {
	GetReport(ctx context.Context, bookingID int64, userID int64, role string) (*models.ReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
