package service

import (
	"ctchen222/bucketlist/internal/api/apperr"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies the signed bearer tokens that prove
// a user's identity. Tokens are stateless: validity is fully determined
// by signature and expiry, there is no revocation list.
type TokenService interface {
	Issue(userID int64) (string, error)
	Verify(tokenString string) (int64, error)
}

type jwtTokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService signing HS256 tokens with the
// given secret, valid for ttl from issuance.
func NewTokenService(secret []byte, ttl time.Duration) TokenService {
	return &jwtTokenService{secret: secret, ttl: ttl}
}

// Issue signs a token for userID expiring after the configured TTL.
func (s *jwtTokenService) Issue(userID int64) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the subject user id.
// Expired and otherwise-invalid tokens are distinct errors for
// diagnostics, but callers treat both as access denied.
func (s *jwtTokenService) Verify(tokenString string) (int64, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, apperr.ErrTokenExpired
		}
		return 0, apperr.ErrTokenInvalid
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, apperr.ErrTokenInvalid
	}
	return userID, nil
}
