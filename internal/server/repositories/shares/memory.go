package shares

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/vaultshare/internal/common"
	"github.com/dmitrijs2005/vaultshare/internal/server/models"
)

// MemoryRepository keeps shares in process memory. It backs the memory
// driver and tests.
type MemoryRepository struct {
	mu     sync.Mutex
	byID   map[string]*models.Share
	byHash map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:   make(map[string]*models.Share),
		byHash: make(map[string]string),
	}
}

func (r *MemoryRepository) Insert(ctx context.Context, s *models.Share) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[s.ID]; ok {
		return common.ErrAlreadyExists
	}
	if _, ok := r.byHash[s.TokenHash]; ok {
		return common.ErrAlreadyExists
	}

	c := cloneShare(s)
	r.byID[c.ID] = c
	r.byHash[c.TokenHash] = c.ID
	return nil
}

func (r *MemoryRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*models.Share, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byHash[tokenHash]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneShare(r.byID[id]), nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*models.Share, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneShare(s), nil
}

func (r *MemoryRepository) CompareAndSwapViewCount(ctx context.Context, id string, expected int, viewedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok ||
		s.ViewCount != expected ||
		s.IsExhausted() ||
		s.IsRevoked() ||
		s.IsExpired(viewedAt) {
		return common.ErrVersionConflict
	}

	s.ViewCount++
	if s.FirstViewedAt == nil {
		t := viewedAt.UTC()
		s.FirstViewedAt = &t
	}
	return nil
}

func (r *MemoryRepository) SetRevoked(ctx context.Context, id, ownerID string, at time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok || s.OwnerID != ownerID {
		return false, nil
	}
	if s.RevokedAt == nil {
		t := at.UTC()
		s.RevokedAt = &t
	}
	return true, nil
}

func cloneShare(s *models.Share) *models.Share {
	c := *s
	c.ExpiresAt = cloneTime(s.ExpiresAt)
	c.FirstViewedAt = cloneTime(s.FirstViewedAt)
	c.RevokedAt = cloneTime(s.RevokedAt)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
