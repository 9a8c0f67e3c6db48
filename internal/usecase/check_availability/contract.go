package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

// TherapistRepository интерфейс репозитория терапевтов
type TherapistRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Therapist, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveBySlot(ctx context.Context, therapistID int64, date time.Time, startTime types.TimeString) (*domain.Booking, error)
}

// LeaveRepository интерфейс репозитория заявок на выходной
type LeaveRepository interface {
	HasApprovedOn(ctx context.Context, therapistID int64, date time.Time) (bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	if p.Location == nil {
		return time.Now()
	}
	return time.Now().In(p.Location)
}
