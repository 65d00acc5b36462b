// Package passcode derives and verifies salted scrypt records for the shared
// admin and dictator passcodes.
package passcode

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const algorithm = "scrypt"

// Fixed work factor. Deliberately expensive: the passcodes are short and
// low-entropy, so offline brute force has to stay costly.
const (
	costN = 16384
	costR = 8
	costP = 1

	saltLen = 16
	keyLen  = 32
)

// Hash derives a fresh salted record for a plaintext passcode, serialized as
// "scrypt$<salt-base64>$<key-base64>".
func Hash(plaintext string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key, err := scrypt.Key([]byte(plaintext), salt, costN, costR, costP, keyLen)
	if err != nil {
		return "", fmt.Errorf("failed to derive key: %w", err)
	}

	return strings.Join([]string{
		algorithm,
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(key),
	}, "$"), nil
}

// Verify checks a plaintext passcode against a stored record.
// It fails closed: a malformed record, empty salt or key, or a derivation
// error all yield false rather than an error. The comparison is constant
// time so partial matches don't leak through response timing.
func Verify(plaintext, stored string) bool {
	parts := strings.Split(stored, "$")
	if len(parts) != 3 || parts[0] != algorithm {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}
	expected, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return false
	}
	if len(salt) == 0 || len(expected) == 0 {
		return false
	}

	derived, err := scrypt.Key([]byte(plaintext), salt, costN, costR, costP, len(expected))
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(derived, expected) == 1
}
