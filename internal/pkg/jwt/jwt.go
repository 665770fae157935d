package jwt

import (
	"encoding/json"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies tokens issued by the external identity service. This
// service never mints tokens of its own; it shares the HS256 secret with
// the issuer.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	ValidateConnectionToken(tokenString string) (userID int64, err error)
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// ValidateConnectionToken verifies a token presented at connection admission
// and returns its subject user id. Signature, expiry and token type are all
// checked; any failure is an invalid token.
func (j *JWTService) ValidateConnectionToken(tokenString string) (int64, error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return 0, err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "access" {
		return 0, jwt.ErrInvalidJWT()
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return 0, jwt.ErrInvalidJWT()
	}

	userID, ok := asInt64(userIDVal)
	if !ok {
		return 0, jwt.ErrInvalidJWT()
	}

	return userID, nil
}

// asInt64 normalizes the numeric representations a decoded claim can take.
func asInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case float64:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}
