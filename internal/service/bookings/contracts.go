package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string) (*domain.Booking, error)
	CancelByRecurrenceGroup(ctx context.Context, groupID uuid.UUID, fromDate time.Time, reason string) ([]*domain.Booking, error)
	Complete(ctx context.Context, id int64) (*domain.Booking, error)
}

// TherapistRepository интерфейс репозитория терапевтов
type TherapistRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Therapist, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Therapist, error)
}

// SlotsCache кэш занятых времён
type SlotsCache interface {
	Invalidate(ctx context.Context, therapistID int64, dates ...time.Time) error
}

// Notifier отправка уведомлений; ошибки не возвращаются
type Notifier interface {
	Notify(ctx context.Context, userID int64, message string, sendAt time.Time)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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

type realTimeProvider struct {
	loc *time.Location
}

func (p realTimeProvider) Now() time.Time {
	if p.loc == nil {
		return time.Now()
	}
	return time.Now().In(p.loc)
}
