package list_own_leaves

import (
	"context"

	"github.com/m04kA/TheraConnect-BookingService/internal/service/therapists/models"
)

type TherapistService interface {
	ListOwnLeaves(ctx context.Context, userID int64, status *string) (*models.LeaveListResponse, error)
}

type Logger interface {
	Error(format string, v ...interface{})
}
