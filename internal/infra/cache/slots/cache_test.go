package slots

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

var day = time.Date(2024, 11, 7, 0, 0, 0, 0, time.UTC)

func newCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCache(client, 5*time.Minute), mr
}

func TestCache_RoundTrip(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	_, hit, err := c.GetBookedTimes(ctx, 1, day)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.SetBookedTimes(ctx, 1, day, []types.TimeString{"10:00", "09:00"}))

	times, hit, err := c.GetBookedTimes(ctx, 1, day)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []types.TimeString{"09:00", "10:00"}, times)

	assert.True(t, mr.Exists("slots:booked:1:2024-11-07"))
	assert.Equal(t, 5*time.Minute, mr.TTL("slots:booked:1:2024-11-07"))
}

func TestCache_EmptyDayIsAHit(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetBookedTimes(ctx, 1, day, nil))

	times, hit, err := c.GetBookedTimes(ctx, 1, day)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Empty(t, times)
}

func TestCache_Invalidate(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()
	next := day.AddDate(0, 0, 1)

	require.NoError(t, c.SetBookedTimes(ctx, 1, day, []types.TimeString{"09:00"}))
	require.NoError(t, c.SetBookedTimes(ctx, 1, next, []types.TimeString{"09:00"}))
	require.NoError(t, c.SetBookedTimes(ctx, 2, day, []types.TimeString{"09:00"}))

	require.NoError(t, c.Invalidate(ctx, 1, day, next))

	assert.False(t, mr.Exists("slots:booked:1:2024-11-07"))
	assert.False(t, mr.Exists("slots:booked:1:2024-11-08"))
	assert.True(t, mr.Exists("slots:booked:2:2024-11-07"))
}

func TestCache_ExpiresAfterTTL(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetBookedTimes(ctx, 1, day, []types.TimeString{"09:00"}))
	mr.FastForward(6 * time.Minute)

	_, hit, err := c.GetBookedTimes(ctx, 1, day)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCache_NilIsNoop(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	_, hit, err := c.GetBookedTimes(ctx, 1, day)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.SetBookedTimes(ctx, 1, day, nil))
	assert.NoError(t, c.Invalidate(ctx, 1, day))
	assert.Nil(t, NewCache(nil, time.Minute))
}
