package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/catalog-admin/internal/utils/response"
)

type RateLimiter interface {
	Allow(ctx context.Context, client string) (bool, int, int, error)
}

// RateLimit throttles writes per client address. Reads pass untouched and a
// limiter failure lets the request through.
func RateLimit(limiter RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isWrite(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			logger := LoggerFromContext(r.Context())
			client := clientAddr(r)

			allowed, remaining, retryAfter, err := limiter.Allow(r.Context(), client)
			if err != nil {
				logger.Warn("Rate limit check failed, allowing request", slog.String("client", client), slog.Any("error", err))
				next.ServeHTTP(w, r)

				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !allowed {
				logger.Warn("Rate limit exceeded", slog.String("client", client), slog.Int("retry_after", retryAfter))
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				response.TooManyRequests(w, "Quá nhiều yêu cầu, vui lòng thử lại sau "+strconv.Itoa(retryAfter)+" giây")

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
