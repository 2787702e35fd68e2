package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	j := &JWTer{Secret: []byte("secret"), Issuer: "mentorize", TTL: time.Hour}

	token, err := j.Issue("uid-42", "a@x.com", "MENTOR")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := j.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-42", claims.Subject)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "MENTOR", claims.Role)
	assert.Equal(t, "mentorize", claims.Issuer)
}

func TestParseRejects(t *testing.T) {
	j := &JWTer{Secret: []byte("secret"), Issuer: "mentorize", TTL: time.Hour}
	token, err := j.Issue("uid-42", "a@x.com", "STUDENT")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other := &JWTer{Secret: []byte("other"), Issuer: "mentorize", TTL: time.Hour}
		_, err := other.Parse(token)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := &JWTer{Secret: []byte("secret"), Issuer: "someone-else", TTL: time.Hour}
		_, err := other.Parse(token)
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := j.Parse("not.a.token")
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		// TTL 为负再加上 60s leeway 仍然过期
		short := &JWTer{Secret: []byte("secret"), Issuer: "mentorize", TTL: -2 * time.Minute}
		expired, err := short.Issue("uid-42", "a@x.com", "STUDENT")
		require.NoError(t, err)
		_, err = j.Parse(expired)
		assert.Error(t, err)
	})
}
