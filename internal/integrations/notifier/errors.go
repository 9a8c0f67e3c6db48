package notifier

import "errors"

var (
	// ErrInvalidPayload задача с нечитаемым payload, повтор бессмысленен
	ErrInvalidPayload = errors.New("notifier: invalid task payload")

	// ErrEnqueue не удалось поставить задачу в очередь
	ErrEnqueue = errors.New("notifier: failed to enqueue task")

	// ErrStore не удалось сохранить уведомление
	ErrStore = errors.New("notifier: failed to store notification")

	// ErrEmailNotConfigured SendGrid клиент не настроен
	ErrEmailNotConfigured = errors.New("notifier: email sender not configured")

	// ErrEmailSend SendGrid вернул ошибку
	ErrEmailSend = errors.New("notifier: email send failed")
)
