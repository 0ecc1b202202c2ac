package middleware

import (
	"net"
	"net/http"

	"github.com/scoreline/score-sync/internal/ratelimiter"
)

// RateLimit rejects requests from an IP that has spent its budget.
// Mount after chimw.RealIP so RemoteAddr carries the client address.
func RateLimit(limiters *ratelimiter.IPLimiters) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			if !limiters.Allow(ip) {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
