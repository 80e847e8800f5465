package application

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

var (
	ErrInvalidPasswordHash = errors.New("invalid password hash format")
)

// PBKDF2Params controls the key derivation used for password hashing.
type PBKDF2Params struct {
	Iterations int
	SaltLength int
	KeyLength  int
}

// DefaultPBKDF2Params matches the deployed credential records:
// PBKDF2-SHA-384 with 100 000 iterations and a 20-byte salt.
var DefaultPBKDF2Params = PBKDF2Params{
	Iterations: 100_000,
	SaltLength: 20,
	KeyLength:  48,
}

// CreatePasswordHash derives a hash for the password with a fresh random salt
// and encodes it as a self-describing string.
func CreatePasswordHash(password string, params PBKDF2Params) (string, error) {
	salt := make([]byte, params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := pbkdf2.Key([]byte(password), salt, params.Iterations, params.KeyLength, sha512.New384)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	// Format is $pbkdf2-sha384$i=...$salt$hash
	return fmt.Sprintf("$pbkdf2-sha384$i=%d$%s$%s", params.Iterations, b64Salt, b64Hash), nil
}

// VerifyPassword recomputes the derivation described by hashedPassword and
// compares the result in constant time. A mismatch yields
// ErrInvalidCredentials; a malformed record yields ErrInvalidPasswordHash.
func VerifyPassword(hashedPassword, password string) error {
	parts := strings.Split(hashedPassword, "$")
	if len(parts) != 5 {
		return ErrInvalidPasswordHash
	}

	if parts[1] != "pbkdf2-sha384" {
		return ErrInvalidPasswordHash
	}

	var iterations int
	if _, err := fmt.Sscanf(parts[2], "i=%d", &iterations); err != nil {
		return ErrInvalidPasswordHash
	}
	if iterations <= 0 {
		return ErrInvalidPasswordHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return ErrInvalidPasswordHash
	}

	decodedHash, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return ErrInvalidPasswordHash
	}

	comparisonHash := pbkdf2.Key([]byte(password), salt, iterations, len(decodedHash), sha512.New384)

	if subtle.ConstantTimeCompare(decodedHash, comparisonHash) == 1 {
		return nil
	}

	return ErrInvalidCredentials
}
