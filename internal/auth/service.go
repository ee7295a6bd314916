// Package auth implements the dashboard's demo-grade sign-in flow.
// Credentials are plaintext by design (see pkg/security); a production
// deployment must replace this scheme entirely.
package auth

import (
	"context"
	"strings"

	"github.com/dcastillo-dev/depotops-backend/internal/ledger"
	"github.com/dcastillo-dev/depotops-backend/pkg/errors"
	"github.com/dcastillo-dev/depotops-backend/pkg/logger"
	"github.com/dcastillo-dev/depotops-backend/pkg/security"
)

// invalidCredentials is the single message for every sign-in failure so
// callers cannot distinguish unknown emails from wrong passwords.
const invalidCredentials = "invalid credentials"

// Service gates the dashboard behind the stored users and credentials.
type Service interface {
	SignIn(ctx context.Context, email, password string) (*ledger.Session, error)
	SignOut(ctx context.Context) error
	CurrentSession(ctx context.Context) (*ledger.Session, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
}

// ServiceParams configure the auth service.
type ServiceParams struct {
	Store  ledger.Store
	Logger *logger.Logger
}

type service struct {
	store ledger.Store
	logg  *logger.Logger
}

// NewService wires the auth service over the ledger store.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, errors.New(errors.CodeInternal, "ledger store required")
	}
	return &service{store: params.Store, logg: params.Logger}, nil
}

// SignIn matches the permanent password first, then any outstanding
// temporary password. A matching temporary password is consumed: it becomes
// the permanent password and cannot be replayed as a temporary one.
func (s *service) SignIn(ctx context.Context, email, password string) (*ledger.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, errors.New(errors.CodeUnauthorized, invalidCredentials)
	}

	l, err := s.store.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeUnauthorized, err, invalidCredentials)
	}

	user := l.UserByEmail(email)
	cred, hasCred := l.Credentials[email]
	if user == nil || !hasCred {
		return nil, errors.New(errors.CodeUnauthorized, invalidCredentials)
	}

	switch {
	case security.Matches(password, cred.Password):
		// permanent password, nothing to persist
	case security.Matches(password, cred.TempPassword):
		cred.Password = cred.TempPassword
		cred.TempPassword = ""
		l.Credentials[email] = cred
		if err := s.store.Save(ctx, l); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(errors.CodeUnauthorized, invalidCredentials)
	}

	session := &ledger.Session{Email: user.Email, Name: user.Name, Role: user.Role}
	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithUserEmail(ctx, email), "signed in")
	}
	return session, nil
}

func (s *service) SignOut(ctx context.Context) error {
	return s.store.ClearSession(ctx)
}

func (s *service) CurrentSession(ctx context.Context) (*ledger.Session, error) {
	return s.store.LoadSession(ctx)
}

// ForgotPassword issues a fresh one-time temporary password, replacing any
// outstanding one. The caller displays it; there is no email delivery in
// the demo.
func (s *service) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", errors.New(errors.CodeUnauthorized, invalidCredentials)
	}

	l, err := s.store.Load(ctx)
	if err != nil {
		return "", errors.Wrap(errors.CodeUnauthorized, err, invalidCredentials)
	}

	cred, ok := l.Credentials[email]
	if !ok || l.UserByEmail(email) == nil {
		return "", errors.New(errors.CodeUnauthorized, invalidCredentials)
	}

	temp, err := security.GenerateTempPassword(security.DefaultTempPasswordLength)
	if err != nil {
		return "", errors.Wrap(errors.CodeInternal, err, "generating temporary password")
	}

	cred.TempPassword = temp
	l.Credentials[email] = cred
	if err := s.store.Save(ctx, l); err != nil {
		return "", err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithUserEmail(ctx, email), "temporary password issued")
	}
	return temp, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
