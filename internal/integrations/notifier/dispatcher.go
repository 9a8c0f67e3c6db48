package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const defaultMaxRetry = 5

// Dispatcher ставит уведомления в очередь asynq на момент sendAt
// Ошибки доставки только логируются: уведомление не должно ломать бронирование
type Dispatcher struct {
	client Enqueuer
	queue  string
	log    Logger
}

// NewDispatcher создает диспетчер. client == nil - уведомления только логируются
func NewDispatcher(client Enqueuer, queue string, log Logger) *Dispatcher {
	return &Dispatcher{
		client: client,
		queue:  queue,
		log:    log,
	}
}

// NewTask собирает asynq задачу с отложенной обработкой
func NewTask(p Payload, queue string) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, nil, err
	}

	opts := []asynq.Option{
		asynq.ProcessAt(p.SendAt),
		asynq.MaxRetry(defaultMaxRetry),
	}
	if queue != "" {
		opts = append(opts, asynq.Queue(queue))
	}

	return asynq.NewTask(TypeNotificationSend, b), opts, nil
}

// Notify ставит в очередь сообщение для пользователя
func (d *Dispatcher) Notify(ctx context.Context, userID int64, message string, sendAt time.Time) {
	if err := d.enqueue(ctx, Payload{UserID: userID, Message: message, SendAt: sendAt}); err != nil {
		d.log.Error("Notify: user_id=%d send_at=%s: %v", userID, sendAt.Format(time.RFC3339), err)
		return
	}
	d.log.Info("Notify: queued for user_id=%d at %s", userID, sendAt.Format(time.RFC3339))
}

func (d *Dispatcher) enqueue(ctx context.Context, p Payload) error {
	if d.client == nil {
		d.log.Warn("Notify: queue disabled, dropping message for user_id=%d: %s", p.UserID, p.Message)
		return nil
	}

	task, opts, err := NewTask(p, d.queue)
	if err != nil {
		return fmt.Errorf("%w: build task: %v", ErrEnqueue, err)
	}

	if _, err := d.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("%w: %v", ErrEnqueue, err)
	}

	return nil
}
