package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/handlers"
	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
)

// Заголовки, которые выставляет gateway после аутентификации
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

const (
	msgMissingUserID = "отсутствует или некорректен заголовок X-User-ID"
	msgInvalidRole   = "некорректная роль пользователя"
	msgForbidden     = "недостаточно прав"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	userRoleKey
)

// Auth извлекает идентификатор и роль пользователя из заголовков
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		role := r.Header.Get(HeaderUserRole)
		switch role {
		case domain.RoleParent, domain.RoleTherapist, domain.RoleAdmin:
		default:
			handlers.RespondUnauthorized(w, msgInvalidRole)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, userRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole пропускает только пользователей с одной из ролей
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := GetUserRole(r.Context())
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			handlers.RespondForbidden(w, msgForbidden)
		})
	}
}

// GetUserID возвращает ID пользователя, установленный Auth
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// GetUserRole возвращает роль пользователя, установленную Auth
func GetUserRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(userRoleKey).(string)
	return role, ok
}

// WithUser кладёт пользователя в контекст (для тестов хендлеров)
func WithUser(ctx context.Context, userID int64, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, userRoleKey, role)
}
