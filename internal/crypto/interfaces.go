package crypto

// CredentialHasher hashes and verifies secondary credentials (account
// passwords and the hidden-notes PIN). Implementations must never expose the
// plaintext beyond the call and must compare in constant time.
type CredentialHasher interface {
	// Hash derives an opaque, self-describing hash from plaintext.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches the previously produced hash.
	// A mismatch is a normal negative result, not an error.
	Verify(plaintext, hash string) bool
}
