package auth

import "golang.org/x/crypto/bcrypt"

// passwordHashCost matches the work factor the knowledge base has always
// used; raising it invalidates no existing hashes but slows login.
const passwordHashCost = 10

// HashPassword returns the salted bcrypt hash of a plaintext password.
// Two calls on the same plaintext yield different hashes.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether plaintext matches the stored hash. It never
// returns an error for a wrong password, only false.
func VerifyPassword(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
