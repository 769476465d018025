// Package shares stores vault shares. All implementations keep the view
// counter update and the revoke update to a single atomic statement.
package shares

import (
	"context"
	"time"

	"github.com/dmitrijs2005/vaultshare/internal/server/models"
)

type Repository interface {
	// Insert stores a new share. A token hash (or id) already in use yields
	// common.ErrAlreadyExists.
	Insert(ctx context.Context, share *models.Share) error

	// FindByTokenHash returns common.ErrorNotFound when no share matches.
	FindByTokenHash(ctx context.Context, tokenHash string) (*models.Share, error)

	// FindByID returns common.ErrorNotFound when no share matches. Revoke
	// reads the share through it before writing.
	FindByID(ctx context.Context, id string) (*models.Share, error)

	// CompareAndSwapViewCount consumes one view if the share still has
	// viewCount == expected, is below its limit, is not revoked and has not
	// expired at viewedAt. FirstViewedAt is set on the first view only.
	// Any mismatch yields common.ErrVersionConflict.
	CompareAndSwapViewCount(ctx context.Context, id string, expected int, viewedAt time.Time) error

	// SetRevoked marks the share revoked if it belongs to ownerID. An earlier
	// revocation time is kept. It returns false when no such owned share
	// exists.
	SetRevoked(ctx context.Context, id, ownerID string, at time.Time) (bool, error)
}
