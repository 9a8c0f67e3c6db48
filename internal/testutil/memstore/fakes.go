package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

// Message уведомление, переданное в Notifier
type Message struct {
	UserID int64
	Text   string
	SendAt time.Time
}

// Notifier записывает уведомления вместо постановки в очередь
type Notifier struct {
	mu       sync.Mutex
	Messages []Message
}

func (n *Notifier) Notify(_ context.Context, userID int64, message string, sendAt time.Time) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Messages = append(n.Messages, Message{UserID: userID, Text: message, SendAt: sendAt})
}

// For уведомления конкретного пользователя
func (n *Notifier) For(userID int64) []Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Message, 0)
	for _, m := range n.Messages {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out
}

// Count общее количество уведомлений
func (n *Notifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.Messages)
}

type cacheKey struct {
	therapistID int64
	date        string
}

// Cache in-memory кэш занятых времён; запоминает инвалидации
type Cache struct {
	mu          sync.Mutex
	entries     map[cacheKey][]types.TimeString
	Invalidated []string
}

func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey][]types.TimeString)}
}

func (c *Cache) GetBookedTimes(_ context.Context, therapistID int64, date time.Time) ([]types.TimeString, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	times, ok := c.entries[cacheKey{therapistID, date.Format("2006-01-02")}]
	return times, ok, nil
}

func (c *Cache) SetBookedTimes(_ context.Context, therapistID int64, date time.Time, times []types.TimeString) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{therapistID, date.Format("2006-01-02")}] = append([]types.TimeString(nil), times...)
	return nil
}

func (c *Cache) Invalidate(_ context.Context, therapistID int64, dates ...time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range dates {
		k := cacheKey{therapistID, d.Format("2006-01-02")}
		delete(c.entries, k)
		c.Invalidated = append(c.Invalidated, d.Format("2006-01-02"))
	}
	return nil
}

// FixedClock провайдер времени с фиксированным значением
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time {
	return c.T
}
