package request_leave

import (
	"context"
	"time"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
)

// TherapistRepository интерфейс репозитория терапевтов
type TherapistRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Therapist, error)
}

// LeaveRepository интерфейс репозитория заявок на выходной
type LeaveRepository interface {
	Create(ctx context.Context, leave *domain.Leave) (*domain.Leave, error)
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
