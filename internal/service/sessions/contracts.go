package sessions

import (
	"context"
	"time"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
)

// SessionRepository интерфейс репозитория отчётов и отзывов
type SessionRepository interface {
	CreateReport(ctx context.Context, report *domain.SessionReport) (*domain.SessionReport, error)
	GetReportByBooking(ctx context.Context, bookingID int64) (*domain.SessionReport, error)
	CreateFeedback(ctx context.Context, feedback *domain.SessionFeedback) (*domain.SessionFeedback, error)
	GetFeedbackByBooking(ctx context.Context, bookingID int64) (*domain.SessionFeedback, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// TherapistRepository интерфейс репозитория терапевтов
type TherapistRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Therapist, error)
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

type realTimeProvider struct {
	loc *time.Location
}

func (p realTimeProvider) Now() time.Time {
	if p.loc == nil {
		return time.Now()
	}
	return time.Now().In(p.loc)
}
