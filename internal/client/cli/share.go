package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/vaultshare/internal/client/client"
	"github.com/dmitrijs2005/vaultshare/internal/netx"
	"github.com/dmitrijs2005/vaultshare/internal/server/presenter"
	"github.com/dmitrijs2005/vaultshare/internal/shareapi"
)

var errNoToken = errors.New("an access token is required (-token or VAULTSHARE_ACCESS_TOKEN)")

func (a *App) share(ctx context.Context, c client.Client, args []string) error {
	fs := newFlagSet("share")
	vaultID := fs.String("vault", "", "vault entry id")
	minutes := fs.Int("minutes", 60, "link lifetime in minutes")
	views := fs.Int("views", 1, "number of allowed views")
	note := fs.String("note", "", "note shown to the recipient")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if a.config.AccessToken == "" {
		return errNoToken
	}

	resp, err := c.CreateShare(ctx, &shareapi.CreateShareRequest{
		VaultID:          *vaultID,
		ExpiresInMinutes: *minutes,
		MaxViews:         *views,
		RecipientNote:    *note,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Link:      %s\n", resp.Link)
	fmt.Fprintf(a.out, "Share ID:  %s\n", resp.ShareID)
	if resp.ExpiresAt != nil {
		fmt.Fprintf(a.out, "Expires:   %s\n", resp.ExpiresAt.Local().Format(time.RFC1123))
	}
	fmt.Fprintf(a.out, "Max views: %d\n", resp.MaxViews)
	fmt.Fprintln(a.out, "The link is shown only once. Send it over a channel you trust.")
	return nil
}

func (a *App) revoke(ctx context.Context, c client.Client, args []string) error {
	fs := newFlagSet("revoke")
	shareID := fs.String("id", "", "share id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if a.config.AccessToken == "" {
		return errNoToken
	}

	ok, err := c.RevokeShare(ctx, *shareID)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Share not found.")
		return nil
	}
	fmt.Fprintln(a.out, "Share revoked.")
	return nil
}

func (a *App) open(ctx context.Context, args []string) error {
	fs := newFlagSet("open")
	token := fs.String("t", "", "raw share token")
	link := fs.String("link", "", "share link, opened over HTTP")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *link != "" {
		return a.openLink(ctx, *link)
	}

	raw := *token
	if raw == "" {
		var err error
		if raw, err = a.promptSecret("Share token: "); err != nil {
			return fmt.Errorf("open: read token: %w", err)
		}
	}

	return a.withClient(func(c client.Client) error {
		resp, err := c.RetrieveShare(ctx, raw)
		if err != nil {
			return err
		}
		a.printShare(presenter.View{
			Status:         resp.Status,
			Title:          resp.Title,
			Message:        resp.Message,
			WebsiteName:    resp.WebsiteName,
			Username:       resp.Username,
			Password:       resp.Password,
			Email:          resp.Email,
			URL:            resp.URL,
			RecipientNote:  resp.RecipientNote,
			RemainingViews: resp.RemainingViews,
		})
		return nil
	})
}

// openLink fetches the public share page. Expired, revoked and unknown links
// still carry a JSON view, so 404 and 410 are not errors here.
func (a *App) openLink(ctx context.Context, link string) error {
	var view presenter.View
	_, err := netx.GetJSON(ctx, a.http, link, &view, http.StatusOK, http.StatusNotFound, http.StatusGone)
	if err != nil {
		return err
	}
	a.printShare(view)
	return nil
}

func (a *App) printShare(v presenter.View) {
	fmt.Fprintf(a.out, "%s\n%s\n", v.Title, v.Message)
	if v.Status != "success" {
		return
	}

	printField(a, "Website", v.WebsiteName)
	printField(a, "Username", v.Username)
	printField(a, "Password", v.Password)
	printField(a, "Email", v.Email)
	printField(a, "URL", v.URL)
	printField(a, "Note", v.RecipientNote)
	fmt.Fprintf(a.out, "Views left: %d\n", v.RemainingViews)
}

func printField(a *App, name, value string) {
	if value != "" {
		fmt.Fprintf(a.out, "%-10s %s\n", name+":", value)
	}
}
