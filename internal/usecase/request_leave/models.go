package request_leave

import "time"

// Request модель заявки на выходной
type Request struct {
	UserID int64     // ID пользователя-терапевта (из X-User-ID)
	Date   time.Time // Дата выходного
	Reason *string   // Причина (опционально)
}

// Response созданная заявка
type Response struct {
	ID          int64
	TherapistID int64
	LeaveDate   time.Time
	Reason      *string
	Status      string
	CreatedAt   time.Time
}
