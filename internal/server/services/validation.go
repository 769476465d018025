package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/vaultshare/internal/common"
)

const (
	MinExpiresInMinutes = 1
	MaxExpiresInMinutes = 7 * 24 * 60
	MinViews            = 1
	MaxViews            = 25
	MaxRecipientNoteLen = 200
)

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every rejected field of a request. It matches
// common.ErrValidation with errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", common.ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return common.ErrValidation
}

func (e *ValidationError) add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

// Validate checks the request bounds without touching storage.
func (r CreateShareRequest) Validate() error {
	v := &ValidationError{}

	if strings.TrimSpace(r.EntryID) == "" {
		v.add("entry_id", "vault entry is required")
	}
	if r.ExpiresInMinutes < MinExpiresInMinutes || r.ExpiresInMinutes > MaxExpiresInMinutes {
		v.add("expires_in_minutes", fmt.Sprintf("must be between %d and %d minutes", MinExpiresInMinutes, MaxExpiresInMinutes))
	}
	if r.MaxViews < MinViews || r.MaxViews > MaxViews {
		v.add("max_views", fmt.Sprintf("must be between %d and %d", MinViews, MaxViews))
	}
	if utf8.RuneCountInString(r.RecipientNote) > MaxRecipientNoteLen {
		v.add("recipient_note", fmt.Sprintf("must be at most %d characters", MaxRecipientNoteLen))
	}

	if len(v.Fields) > 0 {
		return v
	}
	return nil
}
