// --- auth/password.go ---
package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the original deployment's cost factor.
const bcryptCost = 10

// HashPassword generates a bcrypt hash of the plain-text password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt password hash with a plain-text password.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
