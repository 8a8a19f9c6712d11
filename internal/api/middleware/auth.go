package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	RoleAdmin = "admin"
)

type contextKey string

const (
	userIDKey   contextKey = "user_id"
	userRoleKey contextKey = "user_role"
)

// Auth требует заголовок X-User-ID и кладет пользователя в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if userID == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок "+HeaderUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, userRoleKey, strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderUserRole))))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly пропускает только роль admin, ставится после Auth
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			handlers.RespondForbidden(w, "доступ только для администратора")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID достает ID пользователя из контекста
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// IsAdmin true для роли admin
func IsAdmin(ctx context.Context) bool {
	role, _ := ctx.Value(userRoleKey).(string)
	return role == RoleAdmin
}

// WithUser кладет пользователя в контекст (для тестов обработчиков)
func WithUser(ctx context.Context, userID, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, userRoleKey, role)
}
