package jwt

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func encodeToken(t *testing.T, claims map[string]interface{}) string {
	t.Helper()
	ta := jwtauth.New("HS256", []byte(testSecret), nil)
	_, tokenString, err := ta.Encode(claims)
	require.NoError(t, err)
	return tokenString
}

func TestValidateConnectionToken_Valid(t *testing.T) {
	svc := NewJWTService(testSecret)

	tokenString := encodeToken(t, map[string]interface{}{
		"user_id": 42,
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	userID, err := svc.ValidateConnectionToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestValidateConnectionToken_Expired(t *testing.T) {
	svc := NewJWTService(testSecret)

	tokenString := encodeToken(t, map[string]interface{}{
		"user_id": 42,
		"type":    "access",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	_, err := svc.ValidateConnectionToken(tokenString)
	assert.Error(t, err)
}

func TestValidateConnectionToken_WrongType(t *testing.T) {
	svc := NewJWTService(testSecret)

	tokenString := encodeToken(t, map[string]interface{}{
		"user_id": 42,
		"type":    "refresh",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	_, err := svc.ValidateConnectionToken(tokenString)
	assert.Error(t, err)
}

func TestValidateConnectionToken_MissingSubject(t *testing.T) {
	svc := NewJWTService(testSecret)

	tokenString := encodeToken(t, map[string]interface{}{
		"type": "access",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	_, err := svc.ValidateConnectionToken(tokenString)
	assert.Error(t, err)
}

func TestValidateConnectionToken_WrongSecret(t *testing.T) {
	svc := NewJWTService("a-different-secret")

	tokenString := encodeToken(t, map[string]interface{}{
		"user_id": 42,
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	_, err := svc.ValidateConnectionToken(tokenString)
	assert.Error(t, err)
}

func TestValidateConnectionToken_Garbage(t *testing.T) {
	svc := NewJWTService(testSecret)

	_, err := svc.ValidateConnectionToken("not-a-token")
	assert.Error(t, err)
}
