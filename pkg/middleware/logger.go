package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/felixge/httpsnoop"
)

// Logger logs one line per request. Server errors log at warn level so a
// failing LLM or search backend stands out from normal traffic.
func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(next, w, r)

			level := slog.LevelInfo
			if m.Code >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}

			logger.Log(r.Context(), level, "request",
				"method", r.Method,
				"uri", r.URL.RequestURI(),
				"status", m.Code,
				"bytes", m.Written,
				"addr", r.RemoteAddr,
				"duration", m.Duration,
			)
		})
	}
}

// Observer receives the outcome of a completed request.
type Observer func(method string, status int, elapsed time.Duration)

// Observe reports every completed request to observe.
func Observe(observe Observer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(next, w, r)
			observe(r.Method, m.Code, m.Duration)
		})
	}
}
