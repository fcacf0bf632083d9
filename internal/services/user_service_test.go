package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateAndAuthenticateUser(t *testing.T) {
	t.Parallel()
	svc := NewUserService(newTestDB(t))

	created, err := svc.CreateUser("A", "a@x.com", "p")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Empty(t, created.PasswordHash)

	user, err := svc.AuthenticateUser("a@x.com", "p")
	require.NoError(t, err)
	require.Equal(t, created.ID, user.ID)
	require.Equal(t, "a@x.com", user.Email)
	require.Empty(t, user.PasswordHash)
}

func TestAuthenticateUser_WrongPassword(t *testing.T) {
	t.Parallel()
	svc := NewUserService(newTestDB(t))

	_, err := svc.CreateUser("A", "a@x.com", "p")
	require.NoError(t, err)

	_, err = svc.AuthenticateUser("a@x.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateUser_UnknownEmail(t *testing.T) {
	t.Parallel()
	svc := NewUserService(newTestDB(t))

	_, err := svc.AuthenticateUser("nobody@x.com", "p")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateUser_MissingFields(t *testing.T) {
	t.Parallel()
	svc := NewUserService(newTestDB(t))

	_, err := svc.CreateUser("", "a@x.com", "p")
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateUser("A", "a@x.com", "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	t.Parallel()
	svc := NewUserService(newTestDB(t))

	_, err := svc.CreateUser("A", "a@x.com", "p")
	require.NoError(t, err)

	_, err = svc.CreateUser("Other", "a@x.com", "q")
	require.Error(t, err)
}

func TestGetUserByID(t *testing.T) {
	t.Parallel()
	svc := NewUserService(newTestDB(t))

	created, err := svc.CreateUser("A", "a@x.com", "p")
	require.NoError(t, err)

	user, err := svc.GetUserByID(created.ID)
	require.NoError(t, err)
	require.Equal(t, "A", user.Name)
	require.Empty(t, user.PasswordHash)

	_, err = svc.GetUserByID("missing")
	require.ErrorIs(t, err, ErrNotFound)
}
