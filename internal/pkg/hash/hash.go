package hash

// Hash produces and checks digests.
type Hash interface {
	Hash(str string) ([]byte, error)
	Verify(hashed, str string) bool
}
