// Package middleware provides the HTTP middleware chain: request logging and
// per-route metrics. Request ID, real IP, and panic recovery come from chi's
// stock middleware.
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
)

// LoggingConfig tunes the request logging middleware.
type LoggingConfig struct {
	// SkipPaths are high-frequency paths excluded from logging, such as the
	// probes and the metrics endpoint.
	SkipPaths []string

	// SlowThreshold promotes requests above this duration to Warn.
	SlowThreshold time.Duration
}

// DefaultLoggingConfig skips the probe and metrics endpoints and flags
// requests slower than three seconds.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		SkipPaths:     []string{"/healthz", "/readyz", "/metrics"},
		SlowThreshold: 3 * time.Second,
	}
}

// RequestLogging returns middleware that logs one entry per completed
// request. 5xx responses log at Error, 4xx and slow requests at Warn.
func RequestLogging(logger logging.Logger, config LoggingConfig) func(http.Handler) http.Handler {
	skip := make(map[string]bool, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skip[p] = true
	}
	log := logger.Named("http")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			wrapped := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			fields := []logging.Field{
				logging.String("method", r.Method),
				logging.String("path", r.URL.Path),
				logging.Int("status", wrapped.Status()),
				logging.Duration("duration", duration),
				logging.Int("bytes", wrapped.BytesWritten()),
				logging.String("remote_addr", r.RemoteAddr),
			}
			if reqID := chimw.GetReqID(r.Context()); reqID != "" {
				fields = append(fields, logging.String("request_id", reqID))
			}

			switch {
			case wrapped.Status() >= 500:
				log.Error("request completed", fields...)
			case wrapped.Status() >= 400:
				log.Warn("request completed", fields...)
			case config.SlowThreshold > 0 && duration >= config.SlowThreshold:
				log.Warn("request completed (slow)", fields...)
			default:
				log.Info("request completed", fields...)
			}
		})
	}
}
