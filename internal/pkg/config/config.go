package config

import (
	"io"
	"time"
)

// Config is the read-only view of runtime settings.
//
// Keys are dotted paths (for example "modules.identity.otp.ttl_seconds").
// Missing keys return the zero value of the requested type.
type Config interface {
	io.Closer

	GetBool(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetInt32(key string) int32
	GetInt64(key string) int64
	GetUint16(key string) uint16
	GetFloat64(key string) float64

	// GetSecond reads an integer and scales it to seconds.
	GetSecond(key string) time.Duration
	// GetMinute reads an integer and scales it to minutes.
	GetMinute(key string) time.Duration

	// GetBinary decodes a base64 value.
	GetBinary(key string) []byte

	// GetArray splits a comma separated value, trimming blanks and dropping
	// empty items.
	GetArray(key string) []string
}
