package router

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/apotekly/api/internal/pkg/ratelimit"
)

// RateLimit gates an endpoint with the given limiter, keyed by client IP and
// scope. Limiter infrastructure failures fail open so a Redis outage does not
// take authentication down with it.
func RateLimit(limiter ratelimit.Limiter, scope string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			if host, _, err := net.SplitHostPort(ip); err == nil {
				ip = host
			}

			allowed, err := limiter.Allow(r.Context(), scope+":"+ip)
			if err != nil {
				slog.WarnContext(r.Context(), "rate limiter unavailable, allowing request", "scope", scope, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				writeJSON(w, errorResponse{Message: "Too many requests. Please try again later."}, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
