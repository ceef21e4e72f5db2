package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/classkeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

const pinKeyLength = 32

// HashPIN derives an app-lock verifier for pin using argon2id with a random
// 32-byte salt. The result uses the same salt:key layout as HashPassword.
func HashPIN(pin []byte) string {
	salt := common.GenerateRandByteArray(32)
	key := derivePINKey(pin, salt)
	defer common.WipeByteArray(key)
	return encodePair(salt, key)
}

// VerifyPIN checks pin against a value produced by HashPIN.
func VerifyPIN(pin []byte, stored string) bool {
	salt, expected, ok := decodePair(stored)
	if !ok || len(expected) != pinKeyLength {
		return false
	}
	actual := derivePINKey(pin, salt)
	defer common.WipeByteArray(actual)
	return subtle.ConstantTimeCompare(expected, actual) == 1
}

func derivePINKey(pin, salt []byte) []byte {
	return argon2.IDKey(pin, salt, 1, 64*1024, 4, pinKeyLength)
}
