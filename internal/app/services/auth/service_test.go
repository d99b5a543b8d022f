package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainuser "wanderstay/internal/domain/user"
	"wanderstay/internal/infra/storage/memory"
)

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type staticSigner struct{}

func (staticSigner) Sign(userID string) (string, error) {
	return fmt.Sprintf("token-for-%s", userID), nil
}

func newService() *Service {
	return &Service{
		Users:     memory.NewUserRepository(),
		Passwords: plainHasher{},
		Tokens:    staticSigner{},
	}
}

func TestRegister_Success(t *testing.T) {
	svc := newService()

	account, err := svc.Register(context.Background(), Credentials{
		Email:    "  Guest@Example.COM ",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, account.ID)
	assert.Equal(t, "guest@example.com", account.Email, "email must be normalized")
	assert.Equal(t, "hashed:correct horse", account.PasswordHash)
	assert.False(t, account.CreatedAt.IsZero())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newService()

	_, err := svc.Register(context.Background(), Credentials{Email: "guest@example.com", Password: "correct horse"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), Credentials{Email: "GUEST@example.com", Password: "other password"})
	assert.ErrorIs(t, err, domainuser.ErrEmailAlreadyUsed)
}

func TestRegister_Validation(t *testing.T) {
	svc := newService()

	_, err := svc.Register(context.Background(), Credentials{Email: "   ", Password: "correct horse"})
	assert.ErrorIs(t, err, domainuser.ErrEmailRequired)

	_, err = svc.Register(context.Background(), Credentials{Email: "guest@example.com", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestLogin_Success(t *testing.T) {
	svc := newService()

	account, err := svc.Register(context.Background(), Credentials{Email: "guest@example.com", Password: "correct horse"})
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), Credentials{Email: "Guest@Example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, account.ID, result.User.ID)
	assert.Equal(t, "token-for-"+string(account.ID), result.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newService()

	_, err := svc.Register(context.Background(), Credentials{Email: "guest@example.com", Password: "correct horse"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), Credentials{Email: "guest@example.com", Password: "wrong horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newService()

	_, err := svc.Login(context.Background(), Credentials{Email: "nobody@example.com", Password: "correct horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_EmptyCredentials(t *testing.T) {
	svc := newService()

	_, err := svc.Login(context.Background(), Credentials{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
