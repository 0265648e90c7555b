// Package logger wraps slog with the handful of structured log shapes the
// portal emits. Platform layer, no business logic.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Logger is the application-wide structured logger.
type Logger struct {
	*slog.Logger
}

// New builds a logger for the given environment. Development gets human
// readable text at debug level, everything else JSON at info level.
func New(env string) *Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// HTTPRequest records one served request with timing.
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// AuthEvent records sign-ins and identity changes. Failures log at warn with
// the refusal reason so brute-force attempts stand out in aggregation.
func (l *Logger) AuthEvent(event, subject string, success bool, reason string) {
	if success {
		l.Info("auth_event",
			slog.String("event", event),
			slog.String("subject", subject),
			slog.Bool("success", true),
		)
		return
	}

	l.Warn("auth_event",
		slog.String("event", event),
		slog.String("subject", subject),
		slog.Bool("success", false),
		slog.String("reason", reason),
	)
}

// RateLimitExceeded records a request refused by the rate limiter.
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}
