package analytics

import (
	"context"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
)

// BookingCounter счётчики бронирований
type BookingCounter interface {
	CountByStatus(ctx context.Context) (map[domain.BookingStatus]int, error)
}

// TherapistCounter счётчики терапевтов
type TherapistCounter interface {
	CountByStatus(ctx context.Context) (map[domain.TherapistStatus]int, error)
}

// ChildCounter количество профилей детей
type ChildCounter interface {
	Count(ctx context.Context) (int, error)
}

// LeaveCounter количество необработанных выходных
type LeaveCounter interface {
	CountPending(ctx context.Context) (int, error)
}

// FeedbackSummarizer количество отзывов и средняя оценка сессий
type FeedbackSummarizer interface {
	RatingSummary(ctx context.Context) (int, float64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Error(format string, v ...interface{})
}
