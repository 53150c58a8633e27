package auth

import "golang.org/x/crypto/bcrypt"

// bcrypt only reads the first 72 bytes of its input, so passwords are
// truncated to that prefix before hashing and before verification. Both
// sides truncate identically, keeping the two in agreement.
const maxPasswordBytes = 72

const defaultBcryptCost = 12

// HashPassword hashes a plaintext password with bcrypt. A non-positive
// cost falls back to the default of 12.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = defaultBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword(truncatePassword(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches storedHash. Malformed
// hashes verify as false rather than surfacing an error; callers treat
// any mismatch the same way.
func VerifyPassword(password, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), truncatePassword(password)) == nil
}

func truncatePassword(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
