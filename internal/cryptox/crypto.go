// Package cryptox holds the credential primitives: PBKDF2 password hashing
// for user accounts and argon2 hashing for the app-lock PIN.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"github.com/dmitrijs2005/classkeeper/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

// Password hashing parameters. Stored credentials carry only salt and key,
// so changing these invalidates every existing hash.
const (
	SaltSize   = 16
	Iterations = 100_000
	KeyLength  = 32

	separator = ":"
)

// HashPassword derives a fresh credential string for password in the form
// base64(salt) ":" base64(key), using a random salt and PBKDF2-HMAC-SHA256.
func HashPassword(password string) (string, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := deriveKey([]byte(password), salt)
	defer common.WipeByteArray(key)

	return encodePair(salt, key), nil
}

// VerifyPassword reports whether password matches a credential produced by
// HashPassword. Malformed credentials (wrong separator count, bad base64,
// unexpected key length) verify as false. The key comparison does not exit
// early on the first differing byte.
func VerifyPassword(password, stored string) bool {
	salt, expected, ok := decodePair(stored)
	if !ok || len(expected) != KeyLength {
		return false
	}

	actual := deriveKey([]byte(password), salt)
	defer common.WipeByteArray(actual)

	return subtle.ConstantTimeCompare(expected, actual) == 1
}

// IsHashedCredential reports whether stored looks like a salted credential
// rather than a legacy plaintext password.
func IsHashedCredential(stored string) bool {
	return strings.Contains(stored, separator)
}

// EqualLegacy compares a legacy plaintext credential in constant time.
func EqualLegacy(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

func deriveKey(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, Iterations, KeyLength, sha256.New)
}

func encodePair(salt, key []byte) string {
	return base64.StdEncoding.EncodeToString(salt) + separator + base64.StdEncoding.EncodeToString(key)
}

func decodePair(stored string) (salt, key []byte, ok bool) {
	if strings.Count(stored, separator) != 1 {
		return nil, nil, false
	}
	parts := strings.SplitN(stored, separator, 2)

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil || len(salt) == 0 {
		return nil, nil, false
	}
	key, err = base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, nil, false
	}
	return salt, key, true
}
