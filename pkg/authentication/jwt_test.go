package authentication

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT(t *testing.T) *JWT {
	t.Helper()
	key, err := GenerateKey(32)
	require.NoError(t, err)
	j, err := NewJWT(key)
	require.NoError(t, err)
	return j
}

func TestNewJWTEmptyKey(t *testing.T) {
	_, err := NewJWT("")
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestTokenRoundTrip(t *testing.T) {
	j := newTestJWT(t)
	token, err := j.NewToken(map[string]string{"id": "42"}, time.Hour)
	require.NoError(t, err)

	value, err := j.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "42", value["id"])
	assert.False(t, j.IsAdmin(token))
}

func TestAdminToken(t *testing.T) {
	j := newTestJWT(t)
	token, err := j.NewAdminToken(time.Hour)
	require.NoError(t, err)
	assert.True(t, j.IsAdmin(token))

	other := newTestJWT(t)
	assert.False(t, other.IsAdmin(token), "token signed with another key")
}

func TestExpiredToken(t *testing.T) {
	j := newTestJWT(t)
	token, err := j.NewAdminToken(-time.Minute)
	require.NoError(t, err)
	_, err = j.Parse(token)
	assert.Error(t, err)
	assert.False(t, j.IsAdmin(token))
}

func TestRejectsOtherAlgorithms(t *testing.T) {
	j := newTestJWT(t)
	claims := CustomClaim{
		Value: map[string]string{RoleClaim: RoleAdmin},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	assert.False(t, j.IsAdmin(token))
	assert.False(t, j.IsAdmin("garbage"))
}
