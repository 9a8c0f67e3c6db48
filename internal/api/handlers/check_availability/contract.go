package check_availability

import (
	"context"

	checkAvailability "github.com/m04kA/TheraConnect-BookingService/internal/usecase/check_availability"
)

type CheckAvailabilityUseCase interface {
	Execute(ctx context.Context, req *checkAvailability.Request) (*checkAvailability.Response, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
