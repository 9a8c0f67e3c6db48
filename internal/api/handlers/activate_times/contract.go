package activate_times

import (
	"context"

	"github.com/m04kA/TheraConnect-BookingService/internal/service/therapists/models"
)

type TherapistService interface {
	ActivateTimes(ctx context.Context, userID int64, req *models.ActivateTimesRequest) (*models.TherapistResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
