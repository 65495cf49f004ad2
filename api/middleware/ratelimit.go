package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// getRateLimitForEndpoint determines which rate limit to apply based on config
func (mw *Middleware) getRateLimitForEndpoint(path, method string) (int, time.Duration) {
	rl := mw.cfg.RateLimit

	switch {
	case path == "/login" || path == "/register" || path == "/logout":
		return rl.AuthLimit, rl.AuthWindow

	case method != http.MethodGet && isAdminPath(path):
		return rl.AdminLimit, rl.AdminWindow

	case method == http.MethodGet && (path == "/search" || path == "/products"):
		return rl.SearchLimit, rl.SearchWindow
	}

	return rl.GeneralLimit, rl.GeneralWindow
}

func isAdminPath(path string) bool {
	return strings.HasPrefix(path, "/product/") && !strings.HasSuffix(path, "/reviews") ||
		strings.HasPrefix(path, "/category/") ||
		strings.HasPrefix(path, "/promotions/")
}

// getClientIP extracts the client IP. chi's RealIP has already folded X-Forwarded-For into RemoteAddr.
func (mw *Middleware) getClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// rateLimitEndpoint groups dynamic paths so each id does not get its own counter
func rateLimitEndpoint(path, method string) string {
	path = strings.TrimSuffix(path, "/")

	parts := strings.Split(path, "/")
	for i, part := range parts {
		if uuid.Validate(part) == nil {
			parts[i] = ":id"
		}
	}
	return method + " " + strings.Join(parts, "/")
}

func setRateLimitHeaders(w http.ResponseWriter, limit, remaining int, reset time.Duration) {
	w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
	w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
	w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(reset).Unix()))
}

// RateLimitMiddleware counts requests per client and endpoint in Redis. Cache errors fail open.
func (mw *Middleware) RateLimitMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !mw.cfg.RateLimit.Enabled || !mw.cacheService.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			if strings.HasPrefix(r.URL.Path, "/health") || r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := mw.getClientIP(r)
			limit, window := mw.getRateLimitForEndpoint(r.URL.Path, r.Method)
			endpoint := rateLimitEndpoint(r.URL.Path, r.Method)

			count, err := mw.cacheService.IncrementRateLimit(r.Context(), clientIP, endpoint, window)
			if err != nil {
				mw.logger.Warn("Rate limit cache error, allowing request",
					gecho.Field("error", err),
					gecho.Field("ip", clientIP),
					gecho.Field("endpoint", endpoint),
				)
				next.ServeHTTP(w, r)
				return
			}

			reset, err := mw.cacheService.RateLimitReset(r.Context(), clientIP, endpoint)
			if err != nil || reset <= 0 {
				reset = window
			}

			if count > limit {
				mw.logger.Warn("Rate limit exceeded",
					gecho.Field("ip", clientIP),
					gecho.Field("endpoint", endpoint),
					gecho.Field("count", count),
					gecho.Field("limit", limit),
				)

				setRateLimitHeaders(w, limit, 0, reset)
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(reset.Seconds())))

				gecho.TooManyRequests(w,
					gecho.WithMessage("Rate limit exceeded. Please try again later."),
					gecho.WithData(map[string]any{
						"limit":       limit,
						"window":      window.String(),
						"retry_after": int(reset.Seconds()),
					}),
					gecho.Send(),
				)
				return
			}

			setRateLimitHeaders(w, limit, max(0, limit-count), reset)
			next.ServeHTTP(w, r)
		})
	}
}
