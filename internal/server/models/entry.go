// Package models defines server-side data models persisted in the database.
package models

import "time"

// VaultEntry is a stored credential. Repositories only read and write
// EncryptedPassword; Password is filled in once the entry has been decrypted.
type VaultEntry struct {
	ID                string
	OwnerID           string
	WebsiteName       string
	Username          string
	Password          string
	EncryptedPassword string
	Email             string
	URL               string
	CreatedAt         time.Time
}
