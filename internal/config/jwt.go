package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrBadToken = errors.New("invalid session token")

type JWT struct {
	secret        []byte
	signingMethod jwt.SigningMethod
}

// SessionClaims bind a token to the one game session it was issued for.
// They carry no expiry: the token is good for as long as the session is
// kept, and an idle session is dropped after SESSION_TTL.
type SessionClaims struct {
	SessionId string `json:"session_id"`
	jwt.RegisteredClaims
}

func NewJWT() (*JWT, error) {
	secret, err := readSecret("JWT_SECRET")
	if err != nil {
		return nil, err
	}
	if len(secret) < 16 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 16 bytes long")
	}
	return NewJWTWithSecret([]byte(secret)), nil
}

func NewJWTWithSecret(secret []byte) *JWT {
	return &JWT{
		secret:        secret,
		signingMethod: jwt.SigningMethodHS256,
	}
}

func (j *JWT) Sign(sessionId string) (string, error) {
	claims := &SessionClaims{
		SessionId: sessionId,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(j.signingMethod, claims).SignedString(j.secret)
}

func (j *JWT) ParseSessionClaims(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&SessionClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return j.secret, nil
		},
		jwt.WithValidMethods([]string{j.signingMethod.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadToken, err)
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.SessionId == "" {
		return nil, fmt.Errorf("%w: malformed claims", ErrBadToken)
	}
	return claims, nil
}
