// Package crypto provides credential hashing for the notelock server.
//
// Passwords and hidden-notes PINs are both stored as bcrypt hashes. Bcrypt
// embeds its salt and cost in the hash string, and its comparison routine is
// constant-time, which is exactly the contract the PIN gate requires.
package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptHasher is the bcrypt-backed implementation of [CredentialHasher].
type bcryptHasher struct {
	// cost is the bcrypt work factor. Values below bcrypt.MinCost fall back
	// to bcrypt.DefaultCost.
	cost int
}

// NewBcryptHasher constructs a [CredentialHasher] with the given bcrypt work
// factor. Pass 0 to use the library default cost.
func NewBcryptHasher(cost int) CredentialHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

// Hash implements [CredentialHasher]. The returned string embeds the salt
// and cost, so no additional material needs to be persisted alongside it.
func (b *bcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify implements [CredentialHasher] using bcrypt's constant-time
// comparison. An empty stored hash never matches anything.
func (b *bcryptHasher) Verify(plaintext, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
