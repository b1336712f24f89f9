package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"fin-ledger/internal/domain"
	"fin-ledger/internal/repository/memory"
)

func newUserService() UserService {
	return NewUserService(memory.NewUserRepository())
}

func TestRegister(t *testing.T) {
	svc := newUserService()

	user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, user.ID)
	require.Equal(t, "Alice", user.Name)
	require.Equal(t, "alice@example.com", user.Email)
	require.Empty(t, user.PasswordHash, "responses must not leak the hash")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	first, err := svc.Register(ctx, "Alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Impostor", "alice@example.com", "other-pass")
	require.ErrorIs(t, err, domain.ErrEmailInUse)

	// the first registration is unaffected
	got, err := svc.Profile(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", got.Name)
}

func TestAuthenticate(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "alice@example.com", "wrong-pass")
	require.ErrorIs(t, err, domain.ErrIncorrectCredentials)
}

func TestAuthenticateUnknownEmailSameError(t *testing.T) {
	svc := newUserService()

	_, err := svc.Authenticate(context.Background(), "ghost@example.com", "whatever")
	require.ErrorIs(t, err, domain.ErrIncorrectCredentials)
}

func TestProfileUnknownUser(t *testing.T) {
	svc := newUserService()

	_, err := svc.Profile(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
