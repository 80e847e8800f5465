package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/example/stempeluhr/internal/persistence"
)

// CredentialService verifies presented credentials against the stored
// password hashes and provisions new accounts. Provisioning is an
// out-of-band operation; it is never reachable through the HTTP boundary.
type CredentialService struct {
	users  persistence.UserRepository
	params PBKDF2Params
	now    func() time.Time
	logger *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewCredentialService constructs a CredentialService with the provided
// dependencies. Zero-value params fall back to DefaultPBKDF2Params.
func NewCredentialService(users persistence.UserRepository, params PBKDF2Params, now func() time.Time, logger *slog.Logger) *CredentialService {
	if params.Iterations <= 0 {
		params = DefaultPBKDF2Params
	}
	if now == nil {
		now = time.Now
	}
	return &CredentialService{
		users:  users,
		params: params,
		now:    now,
		logger: defaultLogger(logger),
	}
}

func (s *CredentialService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "CredentialService", operation, attrs...)
}

// Provision creates a credential record for the login. An existing login
// yields ErrDuplicateLogin and leaves the stored record unchanged.
func (s *CredentialService) Provision(ctx context.Context, login, password string) (err error) {
	login = strings.TrimSpace(login)

	logger := s.loggerWith(ctx, "Provision", "login", login)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "provisioning failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "credential provisioned")
	}()

	if login == "" || password == "" {
		err = ErrInvalidCredentials
		return
	}

	hash, hashErr := CreatePasswordHash(password, s.params)
	if hashErr != nil {
		err = hashErr
		return
	}

	err = s.users.CreateUser(ctx, persistence.User{
		Login:        login,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if errors.Is(err, persistence.ErrDuplicate) {
		err = ErrDuplicateLogin
	}
	return
}

// Verify reports whether the presented password matches the stored hash for
// the login. Unknown logins and wrong passwords are indistinguishable to the
// caller: both return (false, nil), and the unknown-login path still runs a
// full derivation against a fixed dummy record so timing does not differ.
// Only storage failures produce a non-nil error.
func (s *CredentialService) Verify(ctx context.Context, login, password string) (bool, error) {
	login = strings.TrimSpace(login)
	logger := s.loggerWith(ctx, "Verify", "login", login)

	user, err := s.users.GetUser(ctx, login)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			_ = VerifyPassword(s.dummy(), password)
			return false, nil
		}
		logger.ErrorContext(ctx, "credential lookup failed", "error", err, "error_kind", ErrorKind(err))
		return false, err
	}

	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		return false, nil
	}

	return true, nil
}

// dummy returns a hash derived once with the service parameters, used to keep
// the unknown-login path's work identical to a real verification.
func (s *CredentialService) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := CreatePasswordHash("stempeluhr-dummy-password", s.params)
		if err != nil {
			hash = ""
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
