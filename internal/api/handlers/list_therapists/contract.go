package list_therapists

import (
	"context"

	"github.com/m04kA/TheraConnect-BookingService/internal/service/therapists/models"
)

type TherapistService interface {
	List(ctx context.Context, req *models.ListTherapistsRequest) (*models.TherapistListResponse, error)
}

type Logger interface {
	Error(format string, v ...interface{})
}
