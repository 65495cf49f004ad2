package middleware

import (
	"net/http"
	"strings"

	"github.com/MonkyMars/gecho"
)

// SetupLoggerMiddleware logs every request except health probes and metric scrapes
func (mw *Middleware) SetupLoggerMiddleware() func(http.Handler) http.Handler {
	logging := gecho.Handlers.CreateLoggingMiddleware(mw.logger)

	return func(next http.Handler) http.Handler {
		logged := logging(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/metrics" || strings.HasPrefix(r.URL.Path, "/health") {
				next.ServeHTTP(w, r)
				return
			}
			logged.ServeHTTP(w, r)
		})
	}
}
