package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/handlers"
)

const (
	msgRateLimited = "слишком много запросов, попробуйте позже"

	limiterIdleTTL = 10 * time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter token bucket на пользователя (или адрес, если пользователь неизвестен)
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rps      rate.Limit
	burst    int
	now      func() time.Time
}

func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		rps:      rate.Limit(requestsPerSecond),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow расходует токен ключа; неактивные ключи вычищаются при обращении
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for k, e := range rl.limiters {
		if now.Sub(e.lastSeen) > limiterIdleTTL {
			delete(rl.limiters, k)
		}
	}

	entry, ok := rl.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// Middleware отвечает 429 при превышении лимита
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if userID, ok := GetUserID(r.Context()); ok {
			key = "user:" + strconv.FormatInt(userID, 10)
		}
		if !rl.Allow(key) {
			handlers.RespondError(w, http.StatusTooManyRequests, msgRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}
