package http

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	loginContextKey  contextKey = "login"
	loggerContextKey contextKey = "logger"
)

// ContextWithLogin returns a derived context containing the authenticated login.
func ContextWithLogin(ctx context.Context, login string) context.Context {
	return context.WithValue(ctx, loginContextKey, login)
}

// LoginFromContext extracts the authenticated login from context if available.
func LoginFromContext(ctx context.Context) (string, bool) {
	login, ok := ctx.Value(loginContextKey).(string)
	return login, ok
}

// ContextWithLogger returns a derived context carrying a request-scoped logger.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

// LoggerFromContext extracts a request-scoped logger from the context, or nil.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(loggerContextKey).(*slog.Logger)
	return logger
}
