package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims *JWTClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifyToken(t *testing.T) {
	manager := NewJWTManager("test-secret")
	signed := signToken(t, "test-secret", &JWTClaims{
		Roles: []string{"TENANT"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := manager.VerifyToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username())
	assert.True(t, claims.HasRole(RoleTenant), "角色判定忽略大小写")
	assert.Equal(t, RoleTenant, claims.PrimaryRole())
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret")
	signed := signToken(t, "other-secret", &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"},
	})

	_, err := manager.VerifyToken(signed)
	assert.Error(t, err)
}

func TestVerifyTokenExpired(t *testing.T) {
	manager := NewJWTManager("test-secret")
	signed := signToken(t, "test-secret", &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	_, err := manager.VerifyToken(signed)
	assert.Error(t, err)
}

func TestPrimaryRolePrecedence(t *testing.T) {
	claims := &JWTClaims{Roles: []string{"tenant", "owner", "admin"}}
	assert.Equal(t, RoleAdmin, claims.PrimaryRole())

	claims = &JWTClaims{Roles: []string{"tenant", "owner"}}
	assert.Equal(t, RoleOwner, claims.PrimaryRole())

	claims = &JWTClaims{Roles: []string{"something-else"}}
	assert.Empty(t, claims.PrimaryRole())
}
