package models

import "time"

// Share is a time- and view-limited grant to read one vault entry.
// The raw token is never stored, only its hash.
type Share struct {
	ID               string
	EntryID          string
	OwnerID          string
	TokenHash        string
	EncryptedPayload string
	RecipientNote    string
	CreatedAt        time.Time
	ExpiresAt        *time.Time
	MaxViews         int
	ViewCount        int
	FirstViewedAt    *time.Time
	RevokedAt        *time.Time
}

// IsRevoked reports whether the owner revoked the share.
func (s *Share) IsRevoked() bool {
	return s.RevokedAt != nil
}

// IsExpired reports whether the share has expired at now. A share with no
// expiry never expires by time.
func (s *Share) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}

// IsExhausted reports whether every allowed view has been used.
func (s *Share) IsExhausted() bool {
	return s.ViewCount >= s.MaxViews
}

// RemainingViews is never negative.
func (s *Share) RemainingViews() int {
	if n := s.MaxViews - s.ViewCount; n > 0 {
		return n
	}
	return 0
}

// SharePayload is the snapshot of an entry sealed into a share at creation.
// Later edits to the entry do not change what the recipient sees.
type SharePayload struct {
	WebsiteName string `json:"websiteName"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email,omitempty"`
	URL         string `json:"url,omitempty"`
}

// NewSharePayload snapshots entry.
func NewSharePayload(e *VaultEntry) SharePayload {
	return SharePayload{
		WebsiteName: e.WebsiteName,
		Username:    e.Username,
		Password:    e.Password,
		Email:       e.Email,
		URL:         e.URL,
	}
}
