package domain

import "time"

// Notification in-app message delivered to a user at SendAt
type Notification struct {
	ID          int64
	UserID      int64
	Message     string
	SendAt      time.Time
	DeliveredAt *time.Time
	CreatedAt   time.Time
}
