package slots

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

const (
	keyPrefix = "slots:booked:"

	// emptyMarker хранится в множестве, когда на дату нет бронирований:
	// пустое множество в Redis не существует
	emptyMarker = "-"
)

var ErrCache = errors.New("slots.cache: redis error")

// Cache кэш занятых времён терапевта на дату
// Кэш только подсказка: источник истины - транзакция бронирования.
// Nil *Cache безопасен и ведёт себя как всегда пустой кэш
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCache создает кэш. При rdb == nil возвращает nil
func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	if rdb == nil {
		return nil
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// GetBookedTimes возвращает закэшированные занятые времена и признак попадания
func (c *Cache) GetBookedTimes(ctx context.Context, therapistID int64, date time.Time) ([]types.TimeString, bool, error) {
	if c == nil {
		return nil, false, nil
	}

	members, err := c.rdb.SMembers(ctx, key(therapistID, date)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("%w: GetBookedTimes - %v", ErrCache, err)
	}
	if len(members) == 0 {
		return nil, false, nil
	}

	times := make([]types.TimeString, 0, len(members))
	for _, m := range members {
		if m == emptyMarker {
			continue
		}
		times = append(times, types.TimeString(m))
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

	return times, true, nil
}

// SetBookedTimes заменяет закэшированное множество
func (c *Cache) SetBookedTimes(ctx context.Context, therapistID int64, date time.Time, times []types.TimeString) error {
	if c == nil {
		return nil
	}

	members := make([]interface{}, 0, len(times)+1)
	members = append(members, emptyMarker)
	for _, t := range times {
		members = append(members, t.String())
	}

	k := key(therapistID, date)
	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, k)
	pipe.SAdd(ctx, k, members...)
	if c.ttl > 0 {
		pipe.Expire(ctx, k, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: SetBookedTimes - %v", ErrCache, err)
	}

	return nil
}

// Invalidate удаляет ключи переданных дат
func (c *Cache) Invalidate(ctx context.Context, therapistID int64, dates ...time.Time) error {
	if c == nil || len(dates) == 0 {
		return nil
	}

	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = key(therapistID, d)
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - %v", ErrCache, err)
	}

	return nil
}

func key(therapistID int64, date time.Time) string {
	return fmt.Sprintf("%s%d:%s", keyPrefix, therapistID, date.Format(domain.DateFormat))
}
