package children

import (
	"context"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
)

// ChildRepository интерфейс репозитория профилей детей
type ChildRepository interface {
	Create(ctx context.Context, child *domain.Child) (*domain.Child, error)
	GetByID(ctx context.Context, id int64) (*domain.Child, error)
	ListByParent(ctx context.Context, parentID int64) ([]*domain.Child, error)
	Update(ctx context.Context, child *domain.Child) (*domain.Child, error)
	Delete(ctx context.Context, id int64) error
}

// BookingCounter считает запланированные сессии ребёнка
type BookingCounter interface {
	CountScheduledByChild(ctx context.Context, childID int64) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
