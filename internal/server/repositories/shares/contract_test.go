package shares

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/vaultshare/internal/common"
	"github.com/dmitrijs2005/vaultshare/internal/server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// repoFactory returns a fresh repository in which the entry "entry-1" owned
// by "owner-1" already exists.
type repoFactory func(t *testing.T) Repository

var baseTime = time.Date(2025, 5, 10, 9, 30, 0, 0, time.UTC)

func newShare(hash string, maxViews int, expiresAt *time.Time) *models.Share {
	return &models.Share{
		ID:               uuid.NewString(),
		EntryID:          testEntryID,
		OwnerID:          testOwnerID,
		TokenHash:        hash,
		EncryptedPayload: "cipher",
		RecipientNote:    "for bob",
		CreatedAt:        baseTime,
		ExpiresAt:        expiresAt,
		MaxViews:         maxViews,
	}
}

func hashOf(c byte) string {
	b := make([]byte, 64)
	for i := range b {
		b[i] = c
	}
	return string(b)
}

func runRepositoryContract(t *testing.T, factory repoFactory) {
	ctx := context.Background()
	future := baseTime.Add(time.Hour)

	t.Run("insert then find", func(t *testing.T) {
		r := factory(t)
		s := newShare(hashOf('a'), 3, &future)
		require.NoError(t, r.Insert(ctx, s))

		byHash, err := r.FindByTokenHash(ctx, s.TokenHash)
		require.NoError(t, err)
		assert.Equal(t, s.ID, byHash.ID)
		assert.Equal(t, testEntryID, byHash.EntryID)
		assert.Equal(t, testOwnerID, byHash.OwnerID)
		assert.Equal(t, "cipher", byHash.EncryptedPayload)
		assert.Equal(t, "for bob", byHash.RecipientNote)
		assert.True(t, baseTime.Equal(byHash.CreatedAt))
		require.NotNil(t, byHash.ExpiresAt)
		assert.True(t, future.Equal(*byHash.ExpiresAt))
		assert.Equal(t, 3, byHash.MaxViews)
		assert.Equal(t, 0, byHash.ViewCount)
		assert.Nil(t, byHash.FirstViewedAt)
		assert.Nil(t, byHash.RevokedAt)

		byID, err := r.FindByID(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, byHash, byID)
	})

	t.Run("empty note and no expiry round trip", func(t *testing.T) {
		r := factory(t)
		s := newShare(hashOf('b'), 1, nil)
		s.RecipientNote = ""
		require.NoError(t, r.Insert(ctx, s))

		got, err := r.FindByID(ctx, s.ID)
		require.NoError(t, err)
		assert.Empty(t, got.RecipientNote)
		assert.Nil(t, got.ExpiresAt)
	})

	t.Run("duplicate token hash", func(t *testing.T) {
		r := factory(t)
		require.NoError(t, r.Insert(ctx, newShare(hashOf('c'), 1, nil)))
		err := r.Insert(ctx, newShare(hashOf('c'), 1, nil))
		require.ErrorIs(t, err, common.ErrAlreadyExists)
	})

	t.Run("not found", func(t *testing.T) {
		r := factory(t)
		_, err := r.FindByTokenHash(ctx, hashOf('z'))
		require.ErrorIs(t, err, common.ErrorNotFound)
		_, err = r.FindByID(ctx, uuid.NewString())
		require.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("compare and swap consumes views", func(t *testing.T) {
		r := factory(t)
		s := newShare(hashOf('d'), 2, &future)
		require.NoError(t, r.Insert(ctx, s))

		first := baseTime.Add(time.Minute)
		second := baseTime.Add(2 * time.Minute)

		require.NoError(t, r.CompareAndSwapViewCount(ctx, s.ID, 0, first))
		require.ErrorIs(t, r.CompareAndSwapViewCount(ctx, s.ID, 0, second), common.ErrVersionConflict)
		require.NoError(t, r.CompareAndSwapViewCount(ctx, s.ID, 1, second))
		require.ErrorIs(t, r.CompareAndSwapViewCount(ctx, s.ID, 2, second), common.ErrVersionConflict)

		got, err := r.FindByID(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.ViewCount)
		require.NotNil(t, got.FirstViewedAt)
		assert.True(t, first.Equal(*got.FirstViewedAt), "first view time must not move")
	})

	t.Run("compare and swap refuses expired and revoked", func(t *testing.T) {
		r := factory(t)
		past := baseTime.Add(-time.Minute)

		expired := newShare(hashOf('e'), 1, &past)
		require.NoError(t, r.Insert(ctx, expired))
		require.ErrorIs(t, r.CompareAndSwapViewCount(ctx, expired.ID, 0, baseTime), common.ErrVersionConflict)

		revoked := newShare(hashOf('f'), 1, nil)
		require.NoError(t, r.Insert(ctx, revoked))
		ok, err := r.SetRevoked(ctx, revoked.ID, testOwnerID, baseTime)
		require.NoError(t, err)
		require.True(t, ok)
		require.ErrorIs(t, r.CompareAndSwapViewCount(ctx, revoked.ID, 0, baseTime), common.ErrVersionConflict)

		got, err := r.FindByID(ctx, revoked.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.ViewCount)
		assert.Nil(t, got.FirstViewedAt)
	})

	t.Run("set revoked is idempotent and owner scoped", func(t *testing.T) {
		r := factory(t)
		s := newShare(hashOf('g'), 1, nil)
		require.NoError(t, r.Insert(ctx, s))

		ok, err := r.SetRevoked(ctx, s.ID, "someone-else", baseTime)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = r.SetRevoked(ctx, s.ID, testOwnerID, baseTime)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = r.SetRevoked(ctx, s.ID, testOwnerID, baseTime.Add(time.Hour))
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := r.FindByID(ctx, s.ID)
		require.NoError(t, err)
		require.NotNil(t, got.RevokedAt)
		assert.True(t, baseTime.Equal(*got.RevokedAt), "revocation time is kept")

		ok, err = r.SetRevoked(ctx, uuid.NewString(), testOwnerID, baseTime)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("concurrent consumers of a single view", func(t *testing.T) {
		r := factory(t)
		s := newShare(hashOf('h'), 1, nil)
		require.NoError(t, r.Insert(ctx, s))

		const workers = 16
		var (
			wg      sync.WaitGroup
			success atomic.Int32
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := r.CompareAndSwapViewCount(ctx, s.ID, 0, baseTime); err == nil {
					success.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), success.Load())
		got, err := r.FindByID(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.ViewCount)
	})
}
