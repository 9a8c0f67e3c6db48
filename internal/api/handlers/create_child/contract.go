package create_child

import (
	"context"

	"github.com/m04kA/TheraConnect-BookingService/internal/service/children/models"
)

type ChildService interface {
	Create(ctx context.Context, parentID int64, req *models.ChildRequest) (*models.ChildResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
