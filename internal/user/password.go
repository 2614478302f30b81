package user

import "golang.org/x/crypto/bcrypt"

// bcryptCost is tunable; the default trades ~100ms of hashing time for
// resistance to offline cracking.
const bcryptCost = bcrypt.DefaultCost

// HashPassword creates a salted, one-way bcrypt hash of a plaintext password
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
