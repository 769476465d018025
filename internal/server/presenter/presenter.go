// Package presenter turns retrieval outcomes into what an anonymous viewer
// sees. It does no I/O.
package presenter

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/vaultshare/internal/server/services"
)

const defaultTitle = "Shared Vault Entry"

// View is the rendered outcome. Only successful views carry entry fields.
type View struct {
	Status         string     `json:"status"`
	Success        bool       `json:"success"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	WebsiteName    string     `json:"websiteName,omitempty"`
	Username       string     `json:"username,omitempty"`
	Password       string     `json:"password,omitempty"`
	Email          string     `json:"email,omitempty"`
	URL            string     `json:"url,omitempty"`
	RecipientNote  string     `json:"recipientNote,omitempty"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	RemainingViews int        `json:"remainingViews"`
}

var failureText = map[services.Status][2]string{
	services.StatusExpired:          {"Link expired", "This secure link has expired. Ask the owner to generate a new one."},
	services.StatusRevoked:          {"Link revoked", "The owner revoked this share. It can no longer be viewed."},
	services.StatusViewLimitReached: {"Link already used", "This secure link has reached its view limit."},
	services.StatusNotFound:         {"Link unavailable", "We couldn't find this secure share. It may be invalid or expired."},
}

// Render maps a retrieval result to a View. A nil result, or a success
// without payload, renders as not found.
func Render(res *services.RetrievalResult) View {
	if res == nil || (res.Status == services.StatusSuccess && res.Payload == nil) {
		return failure(services.StatusNotFound)
	}
	if res.Status != services.StatusSuccess {
		return failure(res.Status)
	}

	p := res.Payload
	title := p.WebsiteName
	if title == "" {
		title = defaultTitle
	}

	return View{
		Status:         services.StatusSuccess.String(),
		Success:        true,
		Title:          title,
		Message:        "This entry was shared securely. Copy the details below.",
		WebsiteName:    p.WebsiteName,
		Username:       p.Username,
		Password:       p.Password,
		Email:          p.Email,
		URL:            p.URL,
		RecipientNote:  res.RecipientNote,
		ExpiresAt:      res.ExpiresAt,
		RemainingViews: res.RemainingViews,
	}
}

func failure(status services.Status) View {
	text, ok := failureText[status]
	if !ok {
		status = services.StatusNotFound
		text = failureText[status]
	}
	return View{
		Status:  status.String(),
		Title:   text[0],
		Message: text[1],
	}
}

// HTTPStatus is the response code for a retrieval outcome.
func HTTPStatus(status services.Status) int {
	switch status {
	case services.StatusSuccess:
		return http.StatusOK
	case services.StatusExpired, services.StatusRevoked, services.StatusViewLimitReached:
		return http.StatusGone
	default:
		return http.StatusNotFound
	}
}
