package request_leave

import (
	"context"

	requestLeave "github.com/m04kA/TheraConnect-BookingService/internal/usecase/request_leave"
)

type RequestLeaveUseCase interface {
	Execute(ctx context.Context, req *requestLeave.Request) (*requestLeave.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
