package process_leave

import (
	"context"

	processLeave "github.com/m04kA/TheraConnect-BookingService/internal/usecase/process_leave"
)

type ProcessLeaveUseCase interface {
	Execute(ctx context.Context, req *processLeave.Request) (*processLeave.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
