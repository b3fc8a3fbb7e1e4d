// Package uid generates identifiers.
//
// StringID is used for opaque tokens such as session and correlation IDs.
// NumberID is used for primary keys that must sort by creation time.
package uid

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}

// NumberID generates 64-bit integer identifiers.
type NumberID interface {
	Generate() int64
}
