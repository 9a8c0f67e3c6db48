package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
)

const emailSubject = "TheraConnect notification"

// Handler обработчик задач уведомлений на стороне воркера
// Сохраняет in-app уведомление и дублирует его по email
type Handler struct {
	store  NotificationStore
	sender EmailSender
	log    Logger
	now    func() time.Time
}

func NewHandler(store NotificationStore, sender EmailSender, log Logger) *Handler {
	return &Handler{
		store:  store,
		sender: sender,
		log:    log,
		now:    time.Now,
	}
}

// Register регистрирует обработчик в asynq mux
func (h *Handler) Register(mux *asynq.ServeMux) {
	mux.Handle(TypeNotificationSend, h)
}

// ProcessTask реализует asynq.Handler
// Ошибка хранилища возвращается для повтора; ошибка email только логируется,
// чтобы повтор не создал дубль in-app уведомления
func (h *Handler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p Payload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		h.log.Error("ProcessTask: invalid payload: %v", err)
		return fmt.Errorf("%w: %v: %w", ErrInvalidPayload, err, asynq.SkipRetry)
	}
	if p.UserID <= 0 || p.Message == "" {
		h.log.Error("ProcessTask: empty payload for user_id=%d", p.UserID)
		return fmt.Errorf("%w: empty user or message: %w", ErrInvalidPayload, asynq.SkipRetry)
	}

	n, err := h.store.Create(ctx, &domain.Notification{
		UserID:  p.UserID,
		Message: p.Message,
		SendAt:  p.SendAt,
	})
	if err != nil {
		h.log.Error("ProcessTask: store notification for user_id=%d: %v", p.UserID, err)
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	h.sendEmail(ctx, p)

	if err := h.store.MarkDelivered(ctx, n.ID, h.now()); err != nil {
		h.log.Warn("ProcessTask: mark delivered id=%d: %v", n.ID, err)
	}

	h.log.Info("ProcessTask: delivered notification id=%d to user_id=%d", n.ID, p.UserID)
	return nil
}

func (h *Handler) sendEmail(ctx context.Context, p Payload) {
	if h.sender == nil {
		return
	}

	email, err := h.store.GetRecipientEmail(ctx, p.UserID)
	if err != nil {
		h.log.Warn("ProcessTask: lookup email for user_id=%d: %v", p.UserID, err)
		return
	}
	if email == "" {
		return
	}

	if err := h.sender.Send(ctx, EmailMessage{To: email, Subject: emailSubject, Body: p.Message}); err != nil {
		h.log.Warn("ProcessTask: email to user_id=%d failed: %v", p.UserID, err)
	}
}
