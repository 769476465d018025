// Package common defines shared constants and sentinel errors used across
// the client and server layers of vaultshare. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrVersionConflict = errors.New("version conflict")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrValidation     = errors.New("validation error")

	// ErrContention is returned when a view could not be recorded because
	// concurrent writers kept winning. The request is safe to retry.
	ErrContention = errors.New("share is busy, try again")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Cipher errors.
	ErrEmptySecret    = errors.New("encryption secret is empty")
	ErrEmptyPlaintext = errors.New("plaintext cannot be empty")
	ErrDecryption     = errors.New("decryption failed")
)
