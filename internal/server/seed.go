package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/vaultshare/internal/common"
	"github.com/dmitrijs2005/vaultshare/internal/cryptox"
	"github.com/dmitrijs2005/vaultshare/internal/logging"
	"github.com/dmitrijs2005/vaultshare/internal/server/models"
	"github.com/dmitrijs2005/vaultshare/internal/server/repositories/entries"
	"github.com/dmitrijs2005/vaultshare/internal/server/services"
)

type seedEntry struct {
	ID          string `json:"id"`
	OwnerID     string `json:"owner_id"`
	WebsiteName string `json:"website_name"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	URL         string `json:"url"`
}

func readSeedFile(path string) ([]*models.VaultEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []seedEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}

	out := make([]*models.VaultEntry, 0, len(raw))
	for i, r := range raw {
		if r.OwnerID == "" || r.Password == "" {
			return nil, fmt.Errorf("seed file %s: entry %d needs owner_id and password", path, i)
		}
		out = append(out, &models.VaultEntry{
			ID:          r.ID,
			OwnerID:     r.OwnerID,
			WebsiteName: r.WebsiteName,
			Username:    r.Username,
			Password:    r.Password,
			Email:       r.Email,
			URL:         r.URL,
		})
	}
	return out, nil
}

// seedEntries stores entries that are not in repo yet. Entries with a known
// id are skipped so a seed file can be replayed against a persistent store.
func seedEntries(ctx context.Context, repo entries.Repository, cipher *cryptox.Cipher, list []*models.VaultEntry, l logging.Logger) error {
	source := services.NewVaultEntrySource(repo, cipher)

	for _, e := range list {
		if e.ID != "" {
			_, err := repo.GetByID(ctx, e.ID)
			if err == nil {
				l.Info(ctx, "seed entry exists, skipping", "entry_id", e.ID)
				continue
			}
			if !errors.Is(err, common.ErrorNotFound) {
				return err
			}
		}

		if err := source.Put(ctx, e); err != nil {
			return fmt.Errorf("seed entry %q: %w", e.WebsiteName, err)
		}
		l.Info(ctx, "seed entry stored", "entry_id", e.ID, "owner_id", e.OwnerID)
	}
	return nil
}
