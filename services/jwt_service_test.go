package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateToken(42, "jane@example.com")
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, tokenIssuer, claims.Issuer)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("other-secret").GenerateToken(1, "jane@example.com")
	assert.NoError(t, err)

	_, err = NewJWTService("test-secret").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	issuer := &JWTService{secret: []byte("test-secret"), ttl: -time.Hour}
	token, err := issuer.GenerateToken(1, "jane@example.com")
	assert.NoError(t, err)

	_, err = NewJWTService("test-secret").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsForeignIssuer(t *testing.T) {
	claims := Claims{
		UserID: 1,
		Email:  "jane@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = NewJWTService("test-secret").ValidateToken(token)
	assert.Error(t, err)
}
