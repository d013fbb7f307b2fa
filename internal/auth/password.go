package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the registration flow's adaptive cost factor.
const bcryptCost = 12

// HashPassword hashes a plaintext password with a per-call salt. A failure
// here is an internal error; callers surface it as a 500.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether the plaintext candidate matches the stored
// hash. A mismatch is not an error.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
