package get_available_slots

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
	// GetBookedTimes возвращает время начала всех не отменённых бронирований терапевта на дату
	GetBookedTimes(ctx context.Context, therapistID int64, date time.Time) ([]types.TimeString, error)
}

// LeaveRepository интерфейс репозитория заявок на выходной
type LeaveRepository interface {
	HasApprovedOn(ctx context.Context, therapistID int64, date time.Time) (bool, error)
}

// SlotsCache кэш занятых времён (только подсказка, источник истины - БД)
type SlotsCache interface {
	GetBookedTimes(ctx context.Context, therapistID int64, date time.Time) ([]types.TimeString, bool, error)
	SetBookedTimes(ctx context.Context, therapistID int64, date time.Time, times []types.TimeString) error
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
// "Сегодня" считается в Location
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
