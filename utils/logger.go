package utils

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type contextKey string

const (
	CorrelationIDKey contextKey = "correlation_id"
	UserIDKey        contextKey = "user_id"
	UsernameKey      contextKey = "username"
)

type Logger struct {
	zl zerolog.Logger
}

var defaultLevel = zerolog.InfoLevel

func init() {
	if lvl, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL"))); err == nil && lvl != zerolog.NoLevel {
		defaultLevel = lvl
	}
}

// CreateLogger returns a service-scoped structured logger. Output is JSON on
// stderr; LOG_LEVEL controls verbosity process-wide.
func CreateLogger(service string) *Logger {
	zl := zerolog.New(os.Stderr).
		Level(defaultLevel).
		With().
		Timestamp().
		Str("service", service).
		Logger()
	return &Logger{zl: zl}
}

func (l *Logger) Debug(ctx context.Context, message string, fields ...map[string]interface{}) {
	l.log(ctx, l.zl.Debug(), message, fields...)
}

func (l *Logger) Info(ctx context.Context, message string, fields ...map[string]interface{}) {
	l.log(ctx, l.zl.Info(), message, fields...)
}

func (l *Logger) Warn(ctx context.Context, message string, fields ...map[string]interface{}) {
	l.log(ctx, l.zl.Warn(), message, fields...)
}

func (l *Logger) Error(ctx context.Context, message string, fields ...map[string]interface{}) {
	l.log(ctx, l.zl.Error(), message, fields...)
}

func (l *Logger) log(ctx context.Context, event *zerolog.Event, message string, fields ...map[string]interface{}) {
	if id := GetCorrelationID(ctx); id != "" {
		event = event.Str("correlation_id", id)
	}
	if id := GetUserID(ctx); id != "" {
		event = event.Str("user_id", id)
	}
	if len(fields) > 0 {
		event = event.Fields(fields[0])
	}
	event.Msg(message)
}

func GetCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return id
	}
	return ""
}

func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

func GetUsername(ctx context.Context) string {
	if name, ok := ctx.Value(UsernameKey).(string); ok {
		return name
	}
	return ""
}
