package credential

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher derives and verifies salted password credentials.
// Passwords are reduced with SHA-256 before bcrypt so every byte counts, bcrypt alone stops at 72.
type PasswordHasher struct {
	cost int
	// dummy is compared against when a username is unknown so both failure paths cost the same.
	dummy []byte
}

// NewPasswordHasher creates a new PasswordHasher with the given bcrypt cost.
// A cost outside the bcrypt range falls back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword(prehash("tasktracker-dummy-password"), cost)
	if err != nil {
		panic(err)
	}
	return &PasswordHasher{
		cost:  cost,
		dummy: dummy,
	}
}

// prehash returns the base64 encoded SHA-256 digest of password.
// The encoding keeps NUL bytes out of the bcrypt input.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// Hash generates a bcrypt hash of the given password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(prehash(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify checks if the provided password matches the stored hash.
func (h *PasswordHasher) Verify(stored, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(stored), prehash(password))
	return err == nil
}

func (h *PasswordHasher) burn(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummy, prehash(password))
}
