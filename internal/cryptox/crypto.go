// Package cryptox implements the secret-at-rest cipher used for vault entry
// passwords and share payloads.
//
// Every Encrypt call draws a fresh random IV and derives a one-off AES-256 key
// from the long-lived process secret and that IV. The IV travels in front of
// the ciphertext so Decrypt can derive the same key again.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/vaultshare/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	ivSize        = 16
	nonceSize     = 12
	keySize       = 32
	kdfIterations = 10000
)

// Cipher encrypts and decrypts opaque strings with keys derived from a secret.
// It is safe for concurrent use.
type Cipher struct {
	secret []byte
}

// NewCipher returns a Cipher bound to secret. An empty secret is rejected.
func NewCipher(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, common.ErrEmptySecret
	}
	return &Cipher{secret: []byte(secret)}, nil
}

func (c *Cipher) deriveKey(iv []byte) []byte {
	return pbkdf2.Key(c.secret, iv, kdfIterations, keySize, sha256.New)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Encrypt seals plaintext and returns base64(iv || nonce || ciphertext).
// Two calls with the same plaintext produce different results.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", common.ErrEmptyPlaintext
	}

	iv := common.GenerateRandByteArray(ivSize)
	key := c.deriveKey(iv)
	defer common.WipeByteArray(key)

	aesgcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce := common.GenerateRandByteArray(nonceSize)

	out := make([]byte, 0, ivSize+nonceSize+len(plaintext)+aesgcm.Overhead())
	out = append(out, iv...)
	out = append(out, nonce...)
	out = aesgcm.Seal(out, nonce, []byte(plaintext), iv)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt reverses Encrypt. Malformed, truncated or tampered input and input
// produced under another secret all fail with an error wrapping
// common.ErrDecryption.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}

	if len(raw) < ivSize+nonceSize {
		return "", fmt.Errorf("%w: ciphertext too short", common.ErrDecryption)
	}

	iv := raw[:ivSize]
	nonce := raw[ivSize : ivSize+nonceSize]
	sealed := raw[ivSize+nonceSize:]

	key := c.deriveKey(iv)
	defer common.WipeByteArray(key)

	aesgcm, err := newGCM(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}

	plaintext, err := aesgcm.Open(nil, nonce, sealed, iv)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}

	return string(plaintext), nil
}

// EncryptJSON serializes v to JSON and encrypts the result.
func (c *Cipher) EncryptJSON(v any) (string, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return c.Encrypt(string(plaintext))
}

// DecryptJSON decrypts ciphertext and unmarshals the JSON plaintext into v.
// A plaintext that is not valid JSON for v is reported as a decryption error.
func (c *Cipher) DecryptJSON(ciphertext string, v any) error {
	plaintext, err := c.Decrypt(ciphertext)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(plaintext), v); err != nil {
		return fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}
	return nil
}
