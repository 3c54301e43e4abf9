package util

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecretByte []byte
	jwtMutex      sync.RWMutex
)

// ErrTokenSecretMissing is returned when no signing secret has been configured.
var ErrTokenSecretMissing = errors.New("jwt secret is not configured")

// SetJWTSecret sets the HS256 secret used to sign and verify bearer tokens.
// It is safe for concurrent use. Tests that change the secret should not
// run in parallel.
func SetJWTSecret(secret string) {
	jwtMutex.Lock()
	defer jwtMutex.Unlock()
	jwtSecretByte = []byte(secret)
}

// GetJWTSecretByte returns a copy of the current JWT secret bytes.
func GetJWTSecretByte() []byte {
	jwtMutex.RLock()
	defer jwtMutex.RUnlock()
	return append([]byte(nil), jwtSecretByte...)
}

// TokenOptions holds the optional issuer and audience a token must carry.
type TokenOptions struct {
	Issuer   string
	Audience string
}

// Claims is what the identity provider puts in a bearer token. Only the
// subject is required.
type Claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// SignToken issues an HS256 token for subject valid for ttl. It is used by
// the token command for local testing and by handler tests.
func SignToken(subject string, claims Claims, ttl time.Duration, opts TokenOptions) (string, error) {
	secret := GetJWTSecretByte()
	if len(secret) == 0 {
		return "", ErrTokenSecretMissing
	}
	now := time.Now()
	claims.Subject = subject
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	if opts.Issuer != "" {
		claims.Issuer = opts.Issuer
	}
	if opts.Audience != "" {
		claims.Audience = jwt.ClaimStrings{opts.Audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies raw and returns its claims. Expired tokens, foreign
// signing methods and issuer or audience mismatches are rejected.
func ParseToken(raw string, opts TokenOptions) (*Claims, error) {
	secret := GetJWTSecretByte()
	if len(secret) == 0 {
		return nil, ErrTokenSecretMissing
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}
	if opts.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(opts.Audience))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, parserOpts...)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, fmt.Errorf("%w: subject claim is required", jwt.ErrTokenInvalidClaims)
	}
	return claims, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
