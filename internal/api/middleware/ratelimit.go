package middleware

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/Sohelnm1/HCS-BookingService/internal/api/handlers"
)

// RateLimiter ограничивает частоту запросов на запись по пользователю
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
	rps      rate.Limit
	burst    int
}

// NewRateLimiter создает новый лимитер
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[int64]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (rl *RateLimiter) limiterFor(userID int64) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	l, ok := rl.limiters[userID]
	if !ok {
		l = rate.NewLimiter(rl.rps, rl.burst)
		rl.limiters[userID] = l
	}
	return l
}

// Limit middleware, отклоняющее запросы сверх лимита
// Применяется после Auth: лимит считается по пользователю
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, "пользователь не определён")
			return
		}

		if !rl.limiterFor(userID).Allow() {
			handlers.RespondError(w, http.StatusTooManyRequests, "слишком много запросов, попробуйте позже")
			return
		}

		next.ServeHTTP(w, r)
	})
}
