package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_RoundTrip(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)

	token, err := iss.CreateAccessToken(12, "coach", "coach@example.com")
	require.NoError(t, err)

	claims, err := iss.ParseValidate(token)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(12), id)
	assert.Equal(t, "coach", claims.Role)
	assert.Equal(t, "coach@example.com", claims.Email)
}

func TestIssuer_Expired(t *testing.T) {
	iss := NewIssuer("secret", time.Minute)
	iss.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := iss.CreateAccessToken(1, "client", "a@b.c")
	require.NoError(t, err)

	iss.now = time.Now
	_, err = iss.ParseValidate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_WrongSecret(t *testing.T) {
	token, err := NewIssuer("one", time.Hour).CreateAccessToken(1, "client", "a@b.c")
	require.NoError(t, err)

	_, err = NewIssuer("two", time.Hour).ParseValidate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_RejectsNonNumericSubject(t *testing.T) {
	claims := Claims{
		Role: "client",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "abc",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewIssuer("secret", time.Hour).ParseValidate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_RejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "1"}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewIssuer("secret", time.Hour).ParseValidate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "s3cret!"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
