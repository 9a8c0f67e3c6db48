package get_therapist

import (
	"context"

	"github.com/m04kA/TheraConnect-BookingService/internal/service/therapists/models"
)

type TherapistService interface {
	Get(ctx context.Context, id int64) (*models.TherapistResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
