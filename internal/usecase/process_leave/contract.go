package process_leave

import (
	"context"
	"time"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
)

// LeaveRepository интерфейс репозитория заявок на выходной
type LeaveRepository interface {
	// GetByID в транзакции блокирует строку (FOR UPDATE)
	GetByID(ctx context.Context, id int64) (*domain.Leave, error)
	UpdateStatus(ctx context.Context, id int64, status domain.LeaveStatus, adminNotes *string) (*domain.Leave, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CancelScheduledByTherapistAndDate(ctx context.Context, therapistID int64, date time.Time, reason string) ([]*domain.Booking, error)
}

// TherapistRepository интерфейс репозитория терапевтов
type TherapistRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Therapist, error)
}

// SlotsCache кэш занятых времён
type SlotsCache interface {
	Invalidate(ctx context.Context, therapistID int64, dates ...time.Time) error
}

// Notifier отправка уведомлений; ошибки не возвращаются
type Notifier interface {
	Notify(ctx context.Context, userID int64, message string, sendAt time.Time)
}

// Metrics бизнес-метрики заявок
type Metrics interface {
	ObserveLeaveProcessed(action string)
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
