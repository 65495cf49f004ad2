package middleware

import (
	"net/http"

	servertiming "github.com/mitchellh/go-server-timing"
)

// ServerTiming attaches a Server-Timing header collector to every request; services add spans through lib.StartTiming
func ServerTiming(next http.Handler) http.Handler {
	return servertiming.Middleware(next, nil)
}
