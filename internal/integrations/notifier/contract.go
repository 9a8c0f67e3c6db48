package notifier

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
)

// Enqueuer постановка задач в очередь (*asynq.Client)
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// NotificationStore хранилище in-app уведомлений (worker side)
type NotificationStore interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	MarkDelivered(ctx context.Context, id int64, at time.Time) error
	GetRecipientEmail(ctx context.Context, userID int64) (string, error)
}

// EmailSender доставка email; реализации взаимозаменяемы (SendGrid, заглушка)
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
