// Package hash computes keyed digests of short secrets so they never sit in
// storage as plaintext.
package hash
