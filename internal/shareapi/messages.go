package shareapi

import "time"

type CreateShareRequest struct {
	VaultID          string `json:"vault_id"`
	ExpiresInMinutes int    `json:"expires_in_minutes"`
	MaxViews         int    `json:"max_views"`
	RecipientNote    string `json:"recipient_note,omitempty"`
}

// CreateShareResponse is the only place the share link is ever shown.
type CreateShareResponse struct {
	Link      string     `json:"link"`
	ShareID   string     `json:"share_id"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	MaxViews  int        `json:"max_views"`
}

type RevokeShareRequest struct {
	ShareID string `json:"share_id"`
}

type RevokeShareResponse struct {
	Success bool `json:"success"`
}

type RetrieveShareRequest struct {
	Token string `json:"token"`
}

type RetrieveShareResponse struct {
	Status         string     `json:"status"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	WebsiteName    string     `json:"website_name,omitempty"`
	Username       string     `json:"username,omitempty"`
	Password       string     `json:"password,omitempty"`
	Email          string     `json:"email,omitempty"`
	URL            string     `json:"url,omitempty"`
	RecipientNote  string     `json:"recipient_note,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	RemainingViews int        `json:"remaining_views"`
}
