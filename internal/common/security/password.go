package security

import "golang.org/x/crypto/bcrypt"

// HashPassword produces the opaque credential stored on a user. Plaintext is
// never persisted or compared directly.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
