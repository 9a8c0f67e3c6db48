package create_recurring_bookings

import (
	"context"
	"time"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	"github.com/m04kA/TheraConnect-BookingService/internal/usecase/create_booking"
)

// BookingCreator атомарное создание одного бронирования
type BookingCreator interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// TherapistRepository интерфейс репозитория терапевтов
type TherapistRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Therapist, error)
}

// ChildRepository интерфейс репозитория профилей детей
type ChildRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Child, error)
}

// Notifier отправка уведомлений; ошибки не возвращаются
type Notifier interface {
	Notify(ctx context.Context, userID int64, message string, sendAt time.Time)
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
