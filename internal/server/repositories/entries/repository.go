// Package entries reads and writes vault entries. Passwords cross this layer
// encrypted only.
package entries

import (
	"context"

	"github.com/dmitrijs2005/vaultshare/internal/server/models"
)

type Repository interface {
	// Create stores entry. A duplicate id yields common.ErrAlreadyExists.
	Create(ctx context.Context, entry *models.VaultEntry) error
	// GetByID returns common.ErrorNotFound when the entry does not exist.
	GetByID(ctx context.Context, id string) (*models.VaultEntry, error)
}
