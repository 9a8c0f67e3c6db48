package therapists

import (
	"context"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

// TherapistRepository интерфейс репозитория терапевтов
type TherapistRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Therapist, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Therapist, error)
	List(ctx context.Context, filter domain.TherapistsFilter) ([]*domain.Therapist, error)
	ActivateTimes(ctx context.Context, therapistID int64, times []types.TimeString) (*domain.Therapist, error)
}

// LeaveRepository интерфейс репозитория выходных
type LeaveRepository interface {
	List(ctx context.Context, filter domain.LeavesFilter) ([]*domain.Leave, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
