package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dcastillo-dev/depotops-backend/internal/ledger"
	"github.com/dcastillo-dev/depotops-backend/pkg/enums"
	"github.com/dcastillo-dev/depotops-backend/pkg/errors"
)

type fakeStore struct {
	ledger  *ledger.Ledger
	session *ledger.Session
}

func (f *fakeStore) Load(ctx context.Context) (*ledger.Ledger, error) {
	if f.ledger == nil {
		return nil, errors.New(errors.CodeNotFound, "ledger document absent")
	}
	return f.ledger, nil
}

func (f *fakeStore) Save(ctx context.Context, l *ledger.Ledger) error {
	f.ledger = l
	return nil
}

func (f *fakeStore) LoadSession(ctx context.Context) (*ledger.Session, error) {
	if f.session == nil {
		return nil, errors.New(errors.CodeNotFound, "no active session")
	}
	return f.session, nil
}

func (f *fakeStore) SaveSession(ctx context.Context, s *ledger.Session) error {
	f.session = s
	return nil
}

func (f *fakeStore) ClearSession(ctx context.Context) error {
	f.session = nil
	return nil
}

func newAuthFixture(t *testing.T) (Service, *fakeStore) {
	t.Helper()
	store := &fakeStore{
		ledger: &ledger.Ledger{
			Users: []ledger.User{{
				ID:    uuid.New(),
				Email: "admin@depotops.dev",
				Name:  "Demo Admin",
				Role:  enums.UserRoleAdmin,
			}},
			Credentials: map[string]ledger.Credential{
				"admin@depotops.dev": {Password: "admin123"},
			},
		},
	}
	svc, err := NewService(ServiceParams{Store: store})
	require.NoError(t, err)
	return svc, store
}

func TestSignInWithPermanentPassword(t *testing.T) {
	svc, store := newAuthFixture(t)
	ctx := context.Background()

	session, err := svc.SignIn(ctx, "Admin@DepotOps.dev", "admin123")
	require.NoError(t, err)
	require.Equal(t, "admin@depotops.dev", session.Email)
	require.Equal(t, enums.UserRoleAdmin, session.Role)
	require.NotNil(t, store.session, "session must be persisted")

	current, err := svc.CurrentSession(ctx)
	require.NoError(t, err)
	require.Equal(t, session.Email, current.Email)
}

func TestSignInFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, wrongPassword := svc.SignIn(ctx, "admin@depotops.dev", "nope")
	_, unknownEmail := svc.SignIn(ctx, "ghost@depotops.dev", "admin123")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	require.Equal(t, wrongPassword.Error(), unknownEmail.Error(),
		"unknown email and wrong password must yield the same message")
	require.True(t, errors.HasCode(wrongPassword, errors.CodeUnauthorized))
}

func TestTemporaryPasswordIsConsumedAndPromoted(t *testing.T) {
	svc, store := newAuthFixture(t)
	ctx := context.Background()

	temp, err := svc.ForgotPassword(ctx, "admin@depotops.dev")
	require.NoError(t, err)
	require.NotEmpty(t, temp)
	require.Equal(t, temp, store.ledger.Credentials["admin@depotops.dev"].TempPassword)

	// First use succeeds and consumes the temp password.
	_, err = svc.SignIn(ctx, "admin@depotops.dev", temp)
	require.NoError(t, err)

	cred := store.ledger.Credentials["admin@depotops.dev"]
	require.Empty(t, cred.TempPassword, "temp password must be cleared on use")
	require.Equal(t, temp, cred.Password, "temp password must be promoted to permanent")

	// The old permanent password no longer works.
	_, err = svc.SignIn(ctx, "admin@depotops.dev", "admin123")
	require.Error(t, err)

	// The same value keeps working, now as the permanent password.
	_, err = svc.SignIn(ctx, "admin@depotops.dev", temp)
	require.NoError(t, err)
}

func TestForgotPasswordOverwritesPriorTemp(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	first, err := svc.ForgotPassword(ctx, "admin@depotops.dev")
	require.NoError(t, err)
	second, err := svc.ForgotPassword(ctx, "admin@depotops.dev")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	// The superseded temp password is dead.
	_, err = svc.SignIn(ctx, "admin@depotops.dev", first)
	require.Error(t, err)

	_, err = svc.SignIn(ctx, "admin@depotops.dev", second)
	require.NoError(t, err)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.ForgotPassword(context.Background(), "ghost@depotops.dev")
	require.True(t, errors.HasCode(err, errors.CodeUnauthorized))
}

func TestSignOutClearsSession(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.SignIn(ctx, "admin@depotops.dev", "admin123")
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx))
	_, err = svc.CurrentSession(ctx)
	require.True(t, errors.HasCode(err, errors.CodeNotFound))
}

func TestSignInBlankInputs(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.SignIn(ctx, "", "admin123")
	require.True(t, errors.HasCode(err, errors.CodeUnauthorized))
	_, err = svc.SignIn(ctx, "admin@depotops.dev", "")
	require.True(t, errors.HasCode(err, errors.CodeUnauthorized))
}
