// Package sharetoken issues share link tokens and derives their lookup hashes.
//
// The raw token is shown once to the share owner and carried in the link.
// Only its hash is ever persisted, so a database dump does not yield usable
// links.
package sharetoken

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/dmitrijs2005/vaultshare/internal/common"
)

// RawLength is the length of a raw token in hex characters.
const RawLength = common.ShareTokenBytes * 2

// Issue returns a fresh raw token and its hash.
func Issue() (raw string, hash string, err error) {
	raw, err = common.MakeRandHexString(common.ShareTokenBytes)
	if err != nil {
		return "", "", err
	}
	return raw, Hash(raw), nil
}

// Hash returns the hex-encoded SHA-256 digest of candidate.
func Hash(candidate string) string {
	sum := sha256.Sum256([]byte(candidate))
	return hex.EncodeToString(sum[:])
}

// Valid reports whether candidate has the shape of a raw token.
func Valid(candidate string) bool {
	if len(candidate) != RawLength {
		return false
	}
	_, err := hex.DecodeString(candidate)
	return err == nil
}
