package entries

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/vaultshare/internal/common"
	"github.com/dmitrijs2005/vaultshare/internal/server/models"
)

// MemoryRepository keeps entries in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]models.VaultEntry
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]models.VaultEntry)}
}

func (r *MemoryRepository) Create(ctx context.Context, e *models.VaultEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[e.ID]; ok {
		return common.ErrAlreadyExists
	}
	stored := *e
	stored.Password = ""
	r.items[e.ID] = stored
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.VaultEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &e, nil
}
