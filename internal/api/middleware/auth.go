package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Sohelnm1/HCS-BookingService/internal/api/handlers"
)

type contextKey string

const (
	userIDKey  contextKey = "userID"
	isAdminKey contextKey = "isAdmin"
)

// Роль передаётся шлюзом аутентификации во внутренних заголовках;
// сам сервис токены не проверяет
const (
	headerUserID = "X-User-ID"
	headerRole   = "X-User-Role"

	roleAdmin = "admin"
)

// Auth извлекает идентификатор пользователя и роль из заголовков.
// Запрос без X-User-ID отклоняется
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(headerUserID)
		if raw == "" {
			handlers.RespondUnauthorized(w, "заголовок X-User-ID обязателен")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, isAdminKey, r.Header.Get(headerRole) == roleAdmin)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext возвращает ID пользователя из контекста запроса
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// IsAdminFromContext возвращает признак администратора
func IsAdminFromContext(ctx context.Context) bool {
	isAdmin, _ := ctx.Value(isAdminKey).(bool)
	return isAdmin
}

// RequireAdmin пропускает только администраторов
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdminFromContext(r.Context()) {
			handlers.RespondForbidden(w, "требуются права администратора")
			return
		}
		next.ServeHTTP(w, r)
	})
}
