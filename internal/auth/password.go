package auth

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// legacyHashPattern matches the unsalted MD5 hex digests an earlier
// deployment stored. Accounts created before the bcrypt migration still
// carry these until their next successful login.
var legacyHashPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// IsLegacyHash reports whether a stored hash predates the bcrypt
// migration and should be re-hashed after the next successful login.
func IsLegacyHash(stored string) bool {
	return legacyHashPattern.MatchString(stored)
}

// VerifyPassword checks a password against a stored hash, accepting
// both bcrypt and legacy MD5 hashes.
func VerifyPassword(stored, password string) bool {
	if IsLegacyHash(stored) {
		sum := md5.Sum([]byte(password))
		digest := hex.EncodeToString(sum[:])
		return subtle.ConstantTimeCompare([]byte(stored), []byte(digest)) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
