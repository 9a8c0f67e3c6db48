package create_session_report

import (
	"context"

	"github.com/m04kA/TheraConnect-BookingService/internal/service/sessions/models"
)

type SessionService interface {
	CreateReport(ctx context.Context, bookingID int64, userID int64, req *models.CreateReportRequest) (*models.ReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
