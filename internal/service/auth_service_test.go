package service_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activitymagic/internal/config"
	"activitymagic/internal/service"
)

func signToken(t *testing.T, secret, issuer, subject string, expiry time.Duration) string {
	t.Helper()
	claims := &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Email: "family@example.com",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateToken_Valid(t *testing.T) {
	svc := service.NewAuthService(&config.AuthConfig{JWTSecret: "secret", Issuer: "activitymagic"})
	userID := uuid.New()
	token := signToken(t, "secret", "activitymagic", userID.String(), time.Hour)

	claims, err := svc.ValidateToken(token)

	require.NoError(t, err)
	assert.Equal(t, "family@example.com", claims.Email)
	parsed, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := service.NewAuthService(&config.AuthConfig{JWTSecret: "secret", Issuer: "activitymagic"})
	token := signToken(t, "other-secret", "activitymagic", uuid.NewString(), time.Hour)

	_, err := svc.ValidateToken(token)

	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := service.NewAuthService(&config.AuthConfig{JWTSecret: "secret", Issuer: "activitymagic"})
	token := signToken(t, "secret", "activitymagic", uuid.NewString(), -time.Hour)

	_, err := svc.ValidateToken(token)

	assert.Error(t, err)
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	svc := service.NewAuthService(&config.AuthConfig{JWTSecret: "secret", Issuer: "activitymagic"})
	token := signToken(t, "secret", "someone-else", uuid.NewString(), time.Hour)

	_, err := svc.ValidateToken(token)

	assert.Error(t, err)
}

func TestClaims_UserID_NonUUIDSubject(t *testing.T) {
	svc := service.NewAuthService(&config.AuthConfig{JWTSecret: "secret", Issuer: "activitymagic"})
	token := signToken(t, "secret", "activitymagic", "not-a-uuid", time.Hour)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	_, err = claims.UserID()
	assert.Error(t, err)
}
