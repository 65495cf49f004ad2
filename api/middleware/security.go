package middleware

import (
	"burnshop_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (mw *Middleware) SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("Content-Security-Policy", "default-src 'self'")
			w.Header().Set("Permissions-Policy", "geolocation=(), camera=()")

			next.ServeHTTP(w, r)
		})
	}
}

func (mw *Middleware) BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// CSRFMiddleware requires unsafe methods to echo the csrf cookie in the X-CSRF-Token header
func (mw *Middleware) CSRFMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := lib.GetCookieValue(lib.CSRFCookieName, r)
			if err != nil || cookie == "" {
				gecho.Forbidden(w, gecho.WithMessage("CSRF token missing"), gecho.Send())
				return
			}

			token := r.Header.Get(lib.CSRFHeaderName)
			if token == "" || !lib.SecureCompare([]byte(token), []byte(cookie)) {
				mw.logger.Warn("CSRF token mismatch",
					gecho.Field("path", r.URL.Path),
					gecho.Field("method", r.Method),
				)
				gecho.Forbidden(w, gecho.WithMessage("Invalid CSRF token"), gecho.Send())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
