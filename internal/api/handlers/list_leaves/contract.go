package list_leaves

import (
	"context"

	"github.com/m04kA/TheraConnect-BookingService/internal/service/therapists/models"
)

type TherapistService interface {
	ListLeaves(ctx context.Context, status *string) (*models.LeaveListResponse, error)
}

type Logger interface {
	Error(format string, v ...interface{})
}
