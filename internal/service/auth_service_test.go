package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"mentorize-api/internal/core/auth"
	"mentorize-api/internal/domain"
	"mentorize-api/internal/testutil"
	"mentorize-api/pkg/utils"
)

func newAuthService(t *testing.T) (*AuthService, *testutil.MemUserRepo) {
	t.Helper()
	users := testutil.NewMemUserRepo()
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}
	return NewAuthService(users, jwter, bcrypt.MinCost, zap.NewNop()), users
}

func TestValidateCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	registered, err := svc.Register(ctx, RegisterInput{
		Email: "a@x.com", Password: "pw123456", Name: "A", Role: "STUDENT",
	})
	require.NoError(t, err)

	t.Run("unknown email returns no match, not an error", func(t *testing.T) {
		u, err := svc.ValidateCredentials(ctx, "nobody@x.com", "whatever")
		require.NoError(t, err)
		assert.Nil(t, u)
	})

	t.Run("correct password returns the user without the hash", func(t *testing.T) {
		u, err := svc.ValidateCredentials(ctx, "a@x.com", "pw123456")
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, registered.ID, u.ID)
		assert.Equal(t, "a@x.com", u.Email)
		assert.Empty(t, u.PasswordHash)
	})

	t.Run("stored digest survives the strip", func(t *testing.T) {
		_, err := svc.ValidateCredentials(ctx, "a@x.com", "pw123456")
		require.NoError(t, err)
		again, err := svc.ValidateCredentials(ctx, "a@x.com", "pw123456")
		require.NoError(t, err)
		require.NotNil(t, again)
	})

	t.Run("wrong password returns no match", func(t *testing.T) {
		u, err := svc.ValidateCredentials(ctx, "a@x.com", "wrong")
		require.NoError(t, err)
		assert.Nil(t, u)
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthService(t)

	u, err := svc.Register(ctx, RegisterInput{
		Email: "b@x.com", Password: "secret99", Name: "B", Role: "MENTOR",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, domain.RoleMentor, u.Role)

	t.Run("returned user carries no hash", func(t *testing.T) {
		assert.Empty(t, u.PasswordHash)
	})

	t.Run("stored digest is not the plaintext but matches it", func(t *testing.T) {
		stored, err := users.FindByEmail(ctx, "b@x.com")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.NotEqual(t, "secret99", stored.PasswordHash)
		assert.True(t, utils.CheckPassword("secret99", stored.PasswordHash))
	})

	t.Run("duplicate email maps to ErrEmailTaken", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterInput{
			Email: "b@x.com", Password: "other", Name: "B2",
		})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("unknown role falls back to STUDENT", func(t *testing.T) {
		u, err := svc.Register(ctx, RegisterInput{
			Email: "c@x.com", Password: "secret99", Name: "C", Role: "WIZARD",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleStudent, u.Role)
	})
}

func TestIssueSession(t *testing.T) {
	svc, _ := newAuthService(t)
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}

	u := &domain.User{ID: "uid-1", Email: "a@x.com", Role: domain.RoleStudent}
	token, err := svc.IssueSession(u)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwter.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.Subject)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, domain.RoleStudent, claims.Role)
}
