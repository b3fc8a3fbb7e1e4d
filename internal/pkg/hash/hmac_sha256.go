package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HMACSHA256 is a keyed SHA-256 hasher with hex output.
type HMACSHA256 struct {
	secret []byte
}

func NewHMACSHA256(secret string) *HMACSHA256 {
	return &HMACSHA256{secret: []byte(secret)}
}

// Hash returns the hex-encoded HMAC of str. It never fails.
func (s *HMACSHA256) Hash(str string) ([]byte, error) {
	return s.sum(str), nil
}

// Verify reports whether hashed is the digest of str, in constant time.
func (s *HMACSHA256) Verify(hashed, str string) bool {
	return hmac.Equal([]byte(hashed), s.sum(str))
}

func (s *HMACSHA256) sum(str string) []byte {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(str))
	return hex.AppendEncode(nil, h.Sum(nil))
}
