package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/example/stempeluhr/internal/application"
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

// writeChallenge answers an unauthenticated or failed-login request. The body
// is fixed so the response never reveals whether the login existed.
func (r responder) writeChallenge(ctx context.Context, w http.ResponseWriter) {
	http.Error(w, "Anmeldung erforderlich.", http.StatusUnauthorized)
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	if err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}
	http.Error(w, localizedStatusMessage(status), status)
}

// handleServiceError translates domain conditions into HTTP statuses: the
// optimistic-concurrency conflict becomes 409, everything unexpected 500.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, application.ErrConcurrencyConflict):
		r.loggerFor(ctx).WarnContext(ctx, "concurrent punch detected", "error_kind", application.ErrorKind(err))
		http.Error(w, localizedStatusMessage(http.StatusConflict), http.StatusConflict)
	case errors.Is(err, application.ErrNotFound):
		r.writeError(ctx, w, http.StatusNotFound, err)
	default:
		r.writeError(ctx, w, http.StatusInternalServerError, err)
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func localizedStatusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Ungültige Anfrage."
	case http.StatusUnauthorized:
		return "Anmeldung erforderlich."
	case http.StatusNotFound:
		return "Nicht gefunden."
	case http.StatusConflict:
		return "Zwischenzeitlich wurde bereits gestempelt. Bitte prüfen und erneut stempeln."
	default:
		return "Interner Serverfehler."
	}
}
