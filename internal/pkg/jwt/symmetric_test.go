package jwt

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/phishguard/internal/pkg/clock"
)

type fixedID string

func (f fixedID) Generate() string { return string(f) }

func newTestJWT(t *testing.T, now *time.Time) *Symmetric {
	t.Helper()

	j, err := NewHS512(Config{
		Secret:    []byte(strings.Repeat("k", 64)),
		Issuer:    "phishguard",
		Audiences: []string{"phishguard-web"},
		TTL:       time.Hour,
		Clock:     clock.Func(func() time.Time { return *now }),
		UUID:      fixedID("jti-1"),
	})
	require.NoError(t, err)
	return j
}

func TestSymmetric_RoundTrip(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	j := newTestJWT(t, &now)

	tok, err := j.Generate("sess-1")
	require.NoError(t, err)

	claims, err := j.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "jti-1", claims.ID)
}

func TestSymmetric_Expired(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	j := newTestJWT(t, &now)

	tok, err := j.Generate("sess-1")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = j.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestSymmetric_Tampered(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	j := newTestJWT(t, &now)

	tok, err := j.Generate("sess-1")
	require.NoError(t, err)

	_, err = j.Verify(tok + "x")
	assert.Error(t, err)
}

func TestNewHS512_ShortKey(t *testing.T) {
	_, err := NewHS512(Config{Secret: []byte("short")})
	assert.ErrorIs(t, err, ErrSigningKeyTooShort)
}

func TestSessionIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetSessionID(ctx))
	assert.Equal(t, "s1", GetSessionID(SetSessionID(ctx, "s1")))
}
