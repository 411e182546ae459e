package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	apperrors "github.com/seamlabs/codeshift/internal/errors"
)

// RateLimit bounds the request rate across all callers. Zero rps disables
// limiting. Tool submissions are cheap but fan out into real work, so a
// misbehaving poller should be slowed at the door.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst <= 0 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeErrorResponse(w,
					apperrors.CodeRateLimited,
					"request rate limit exceeded",
					GetRequestID(r),
					http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
