package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vaultshare/internal/server/auth"
)

// mint signs an owner token with the shared secret. It is meant for local
// development, where no identity provider issues tokens.
func (a *App) mint(args []string) error {
	fs := newFlagSet("mint")
	user := fs.String("user", "", "owner user id")
	ttl := fs.Int("ttl", 15, "token lifetime in minutes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *user == "" {
		return errors.New("mint: -user is required")
	}
	if *ttl <= 0 {
		return errors.New("mint: -ttl must be positive")
	}

	secret := a.config.SecretKey
	if secret == "" {
		var err error
		if secret, err = a.promptSecret("Signing secret: "); err != nil {
			return fmt.Errorf("mint: read secret: %w", err)
		}
	}
	if secret == "" {
		return errors.New("mint: a secret key is required (-s, VAULTSHARE_SECRET_KEY or prompt)")
	}

	token, err := auth.GenerateToken(*user, []byte(secret), time.Duration(*ttl)*time.Minute)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, token)
	return nil
}
