package common

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// MakeRandHexString reads size bytes from crypto/rand and returns them hex
// encoded, so the result is 2*size characters long. Share tokens are built
// this way from ShareTokenBytes.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	defer WipeByteArray(b)

	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateRandByteArray returns size bytes from crypto/rand. It is used for
// cipher IVs and nonces, where a broken random source is not recoverable, so
// it panics instead of returning an error.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand: %v", err))
	}
	return b
}

// WipeByteArray zeroes b. Derived keys are wiped after use.
func WipeByteArray(b []byte) {
	clear(b)
}
