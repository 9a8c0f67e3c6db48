package notifier

import "time"

// TypeNotificationSend тип asynq задачи доставки уведомления
const TypeNotificationSend = "notification:send"

// Payload полезная нагрузка задачи
type Payload struct {
	UserID  int64     `json:"user_id"`
	Message string    `json:"message"`
	SendAt  time.Time `json:"send_at"`
}

// EmailMessage письмо для отправки
type EmailMessage struct {
	To      string
	Subject string
	Body    string
}
