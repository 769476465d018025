package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vaultshare/internal/common"
	"github.com/dmitrijs2005/vaultshare/internal/cryptox"
	"github.com/dmitrijs2005/vaultshare/internal/server/models"
	"github.com/dmitrijs2005/vaultshare/internal/server/repositories/entries"
	"github.com/google/uuid"
)

// EntrySource loads a vault entry of ownerID with its password in
// plaintext. Entries of other owners are reported as common.ErrorNotFound.
type EntrySource interface {
	GetEntry(ctx context.Context, ownerID, id string) (*models.VaultEntry, error)
}

// VaultEntrySource reads entries from storage and decrypts their passwords
// with the process cipher.
type VaultEntrySource struct {
	repo   entries.Repository
	cipher *cryptox.Cipher
	now    func() time.Time
}

func NewVaultEntrySource(repo entries.Repository, cipher *cryptox.Cipher) *VaultEntrySource {
	return &VaultEntrySource{repo: repo, cipher: cipher, now: time.Now}
}

// GetEntry returns common.ErrorNotFound for unknown or malformed ids and for
// entries owned by someone else. Ownership is checked before the password is
// decrypted.
func (s *VaultEntrySource) GetEntry(ctx context.Context, ownerID, id string) (*models.VaultEntry, error) {
	if uuid.Validate(id) != nil {
		return nil, common.ErrorNotFound
	}

	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}

	password, err := s.cipher.Decrypt(e.EncryptedPassword)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", id, err)
	}
	e.Password = password
	return e, nil
}

// Put encrypts e.Password and stores the entry, assigning an id and a
// creation time when they are missing.
func (s *VaultEntrySource) Put(ctx context.Context, e *models.VaultEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now().UTC()
	}

	enc, err := s.cipher.Encrypt(e.Password)
	if err != nil {
		return err
	}
	e.EncryptedPassword = enc

	return s.repo.Create(ctx, e)
}
