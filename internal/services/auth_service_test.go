package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tipfit/internal/models"
)

func TestRegisterCreatesUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	user, err := svc.Register(context.Background(), "  Ana@X.com ", "secreto1", "Ana")
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", user.Email, "email is normalized before storing")
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.EmailVerified)
	assert.Equal(t, models.DefaultProfile(), user.Profile)
	assert.NotEqual(t, "secreto1", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secreto1")))
}

func TestRegisterRejectsBadInput(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), "sin-arroba", "secreto1", "Ana")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Register(context.Background(), "ana@x.com", "corta", "Ana")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	_, err := svc.Register(context.Background(), "ana@x.com", "secreto1", "Ana")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "ANA@x.com", "secreto2", "Ana")
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	created, err := svc.Register(context.Background(), "ana@x.com", "secreto1", "Ana")
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), "Ana@X.com", "secreto1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.Login(context.Background(), "ana@x.com", "incorrecta")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(context.Background(), "nadie@x.com", "secreto1")
	assert.ErrorIs(t, err, ErrNotFound)
}
