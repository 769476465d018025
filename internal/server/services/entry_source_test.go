package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/vaultshare/internal/common"
	"github.com/dmitrijs2005/vaultshare/internal/cryptox"
	"github.com/dmitrijs2005/vaultshare/internal/server/models"
	"github.com/dmitrijs2005/vaultshare/internal/server/repositories/entries"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaultEntrySource_PutAndGet(t *testing.T) {
	cipher, err := cryptox.NewCipher("k")
	require.NoError(t, err)
	repo := entries.NewMemoryRepository()
	src := NewVaultEntrySource(repo, cipher)
	ctx := context.Background()

	e := &models.VaultEntry{OwnerID: "u1", WebsiteName: "Site", Username: "bob", Password: "s3cret"}
	require.NoError(t, src.Put(ctx, e))
	require.NoError(t, uuid.Validate(e.ID))
	assert.False(t, e.CreatedAt.IsZero())
	assert.NotEqual(t, "s3cret", e.EncryptedPassword)

	raw, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, raw.Password, "repository holds ciphertext only")

	got, err := src.GetEntry(ctx, e.OwnerID, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got.Password)
	assert.Equal(t, "bob", got.Username)
}

func TestVaultEntrySource_Failures(t *testing.T) {
	cipher, err := cryptox.NewCipher("k")
	require.NoError(t, err)
	repo := entries.NewMemoryRepository()
	src := NewVaultEntrySource(repo, cipher)
	ctx := context.Background()

	_, err = src.GetEntry(ctx, "u1", "not-a-uuid")
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = src.GetEntry(ctx, "u1", uuid.NewString())
	require.ErrorIs(t, err, common.ErrorNotFound)

	id := uuid.NewString()
	require.NoError(t, repo.Create(ctx, &models.VaultEntry{ID: id, OwnerID: "u1", EncryptedPassword: "garbage"}))
	_, err = src.GetEntry(ctx, "u1", id)
	require.ErrorIs(t, err, common.ErrDecryption)

	_, err = src.GetEntry(ctx, "u2", id)
	require.ErrorIs(t, err, common.ErrorNotFound, "a corrupt entry of another owner stays opaque")

	err = src.Put(ctx, &models.VaultEntry{OwnerID: "u1"})
	require.ErrorIs(t, err, common.ErrEmptyPlaintext)
}

func TestValidationError_Message(t *testing.T) {
	err := CreateShareRequest{EntryID: "e", ExpiresInMinutes: 1, MaxViews: 30}.Validate()
	require.Error(t, err)
	assert.Equal(t, "validation error: max_views: must be between 1 and 25", err.Error())
}
