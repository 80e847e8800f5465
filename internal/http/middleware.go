package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/example/stempeluhr/internal/logging"
)

// CredentialVerifier checks a presented (login, password) pair. Unknown
// logins and wrong passwords both report (false, nil); only storage failures
// produce an error.
type CredentialVerifier interface {
	Verify(ctx context.Context, login, password string) (bool, error)
}

// RequireBasicAuth gates every wrapped route behind HTTP Basic authentication
// against the verifier. The 401 challenge and body are identical whether the
// login exists or not. The authenticated login is placed on the request
// context for the handlers.
func RequireBasicAuth(verifier CredentialVerifier, realm string, logger *slog.Logger) func(http.Handler) http.Handler {
	responder := newResponder(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			login, password, ok := r.BasicAuth()
			if ok {
				verified, err := verifier.Verify(r.Context(), login, password)
				if err != nil {
					responder.writeError(r.Context(), w, http.StatusInternalServerError, err)
					return
				}
				if verified {
					ctx := ContextWithLogin(r.Context(), login)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			w.Header().Set("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", realm))
			responder.writeChallenge(r.Context(), w)
		})
	}
}

// RequestLogger attaches a request-scoped logger carrying a generated request
// ID, method and path, and logs start and completion of each request.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := base.With(
				"request_id", uuid.NewString(),
				"method", r.Method,
				"path", r.URL.Path,
			)

			ctx := ContextWithLogger(r.Context(), logger)
			ctx = logging.ContextWithLogger(ctx, logger)
			start := time.Now()
			logger.InfoContext(ctx, "request started")
			next.ServeHTTP(w, r.WithContext(ctx))
			logger.InfoContext(ctx, "request completed", "duration", time.Since(start))
		})
	}
}
