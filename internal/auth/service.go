package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// passwordCost is the bcrypt work factor for stored credentials. The plain
// password is bounded by MAX_PASSWORD_LENGTH, which also keeps it inside
// bcrypt's 72-byte input limit.
const passwordCost = bcrypt.DefaultCost

// HashPassword derives the hash stored in the user record; the plain password
// never goes past Register and GenerateSession.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// ComparePasswords reports whether plainPwd matches the stored hash. It is the
// only credential check in the login path, so callers fold its failure into
// the same message as an unknown email.
func ComparePasswords(hashedPwd string, plainPwd string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPwd), []byte(plainPwd)) == nil
}
