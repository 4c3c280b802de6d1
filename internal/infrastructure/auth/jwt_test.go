package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifyAcceptsValidToken(t *testing.T) {
	svc := NewJWTService(testSecret)
	tokenString := signToken(t, testSecret, Claims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := svc.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	svc := NewJWTService(testSecret)
	tokenString := signToken(t, "other-secret", Claims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := svc.Verify(tokenString)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := NewJWTService(testSecret)
	tokenString := signToken(t, testSecret, Claims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, err := svc.Verify(tokenString)
	assert.Error(t, err)
}

func TestVerifyRejectsTokenWithoutUserID(t *testing.T) {
	svc := NewJWTService(testSecret)
	tokenString := signToken(t, testSecret, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := svc.Verify(tokenString)
	assert.Error(t, err)
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	svc := NewJWTService(testSecret)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 42})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(tokenString)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := NewJWTService(testSecret)

	_, err := svc.Verify("not.a.token")
	assert.Error(t, err)
}
