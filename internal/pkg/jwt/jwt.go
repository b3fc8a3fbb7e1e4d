package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidSigningMethod = errors.New("invalid JWT signing method")
	ErrSigningKeyTooShort   = errors.New("HS512 signing key must be at least 64 bytes (512 bits)")
	ErrTokenExpired         = errors.New("JWT token has expired")
	ErrInvalidToken         = errors.New("invalid token")
)

// JWT issues and checks session tokens.
type JWT interface {
	Generate(sessionID string) (string, error)
	Verify(tokenStr string) (Claims, error)
}

type clocker interface {
	Now() time.Time
}

type generator interface {
	Generate() string
}

// Config defines the inputs for building a JWT implementation.
type Config struct {
	// Secret is the HMAC signing key, at least 64 bytes.
	Secret    []byte
	Issuer    string
	Audiences []string
	TTL       time.Duration
	Clock     clocker
	// UUID generates the jti claim.
	UUID generator
}

// Claims are the registered claims plus the session the token points at.
type Claims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

type sessionKey struct{}

// SetSessionID stores the verified session ID on ctx.
func SetSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

// GetSessionID returns the session ID set by SetSessionID, or "".
func GetSessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}
