package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveBySlot(ctx context.Context, therapistID int64, date time.Time, startTime types.TimeString) (*domain.Booking, error)
}

// TherapistRepository интерфейс репозитория терапевтов
type TherapistRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Therapist, error)
}

// ChildRepository интерфейс репозитория профилей детей
type ChildRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Child, error)
}

// LeaveRepository интерфейс репозитория заявок на выходной
type LeaveRepository interface {
	HasApprovedOn(ctx context.Context, therapistID int64, date time.Time) (bool, error)
}

// SlotsCache кэш занятых времён
type SlotsCache interface {
	Invalidate(ctx context.Context, therapistID int64, dates ...time.Time) error
}

// Notifier отправка уведомлений; ошибки не возвращаются
type Notifier interface {
	Notify(ctx context.Context, userID int64, message string, sendAt time.Time)
}

// Metrics бизнес-метрики бронирований
type Metrics interface {
	ObserveBookingCreated(kind string, count int)
	ObserveBookingConflict()
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
